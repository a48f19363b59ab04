// Package cli provides command-line routing and executable discovery.
//
// # Invocation Routing
//
// ParseInvocation decides whether process arguments request a CLI test
// invocation instead of a protocol session:
//
//	inv, ok := cli.ParseInvocation(os.Args[1:])
//	// ["tool", "echo", "Hello", "CLI"] -> {Kind: tool, Name: echo, Input: "Hello CLI"}
//
// At least two arguments are required and the first must be "tool" or
// "resource". Anything else falls through to serving.
//
// # Executable Discovery
//
// The Discoverer interface locates external executables used by tools:
//
//	discoverer := cli.NewDiscoverer(&cli.Config{
//	    Name:   "gofmt",
//	    Path:   "",           // Optional explicit path
//	    Logger: slog.Default(),
//	})
//	path, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Explicit path in Config.Path (if provided)
//  2. System PATH
//  3. $GOROOT/bin and ~/go/bin
package cli
