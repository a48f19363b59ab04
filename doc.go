// Package mcpdev registers MCP tools and resources and lets each of them be
// invoked directly from the command line for manual testing.
//
// A Server forwards every registration to the official MCP go-sdk server and
// keeps its own copy of each descriptor, including an optional test adapter
// that turns one raw command-line string into handler input.
//
// # Basic Usage
//
//	srv, err := mcpdev.NewServer("demo", "1.0.0", mcpdev.WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = srv.RegisterTools(map[string]*mcpdev.Tool{
//	    "echo": {
//	        Description: "Echo text back",
//	        InputSchema: mcpdev.SimpleSchema(map[string]string{"text": "string"}),
//	        Handler: func(ctx context.Context, req *mcpdev.CallToolRequest) (*mcpdev.CallToolResult, error) {
//	            args, err := mcpdev.ParseArguments(req)
//	            if err != nil {
//	                return nil, err
//	            }
//	            text, _ := args["text"].(string)
//	            return mcpdev.TextResult("Echo: " + text), nil
//	        },
//	        TestArgs: func(input string) (map[string]any, error) {
//	            return map[string]any{"text": input}, nil
//	        },
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Command-Line Testing
//
// When the process is started as
//
//	program tool <name> [input...]
//	program resource <name> [input...]
//
// Connect runs the named tool or resource once, prints its text output, and
// returns without serving. Failures are printed to stderr and the process exits
// with status 1. Any other arguments start a normal MCP session on stdio.
//
// Handlers invoked this way receive a context carrying a CallInfo with
// Synthetic set. The request's Session is a real session connected to an
// in-process client that discards notifications, so handlers written against
// req.Session work unchanged. The request carries no progress token, so
// NotifyProgress does nothing.
//
// # Error Handling
//
//	if err := srv.RegisterTools(tools); err != nil {
//	    if regErr, ok := errors.AsType[*mcpdev.RegistrationError](err); ok {
//	        log.Fatalf("host rejected %s %q: %v", regErr.Kind, regErr.Name, regErr.Err)
//	    }
//	}
package mcpdev
