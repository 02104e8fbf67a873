// Package repl runs the interactive shell of wildwave-cli.
//
// Lines are read with chzyer/readline, which keeps the history file and
// drives tab completion built from the console's command tree. Each line
// is split into arguments and handed to an Executor; errors are printed
// inline and the loop continues.
package repl
