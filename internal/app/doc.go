// Package app contains the execution pipeline: it selects the expression
// dialect, registers its modules, loads the configured imports once, and then
// evaluates the expression in one of three modes (no input, the whole input
// as one token, or once per input line), writing one output line per
// evaluation. It is decoupled from any specific entrypoint like a CLI.
package app
