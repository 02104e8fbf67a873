// Package output renders command results for wildwave-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: reflection-driven tables with wide columns
//   - json.go, yaml.go: machine-readable output
//   - theme.go: light and dark color themes
//   - spinner.go, progress.go: loading indicators on stderr
//
// Struct fields take their column header from the `table` tag
// (`table:"HEADER"`, `table:"HEADER,wide"`, `table:"-"`) and fall back to
// the json name.
package output
