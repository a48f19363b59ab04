// Package dispatch invokes registered tools and resources from the command line.
//
// A Dispatcher looks a descriptor up by name, runs its test adapter on the raw
// command-line input, invokes the real handler with a synthetic call context,
// and prints the result. Every outcome is reported as a process exit status:
// ExitSuccess after printing the result to stdout, ExitFailure after printing a
// diagnostic to stderr.
package dispatch
