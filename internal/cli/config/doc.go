// Package config holds the console configuration (~/.wildwave/cli.yaml).
//
// Values are layered by confloader: the YAML file, then WILDWAVE_*
// environment variables, then command-line flags. Named profiles map a
// short name to a server so that --profile staging switches backends.
package config
