// Package subprocess runs external commands for tools.
//
// Each command is spawned, awaited, and has its exit code and output captured
// before Run returns, so no process outlives the call. A command that runs and
// exits non-zero is a normal Result; only failures to spawn or await the
// process are returned as errors.
package subprocess
