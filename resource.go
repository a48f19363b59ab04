package mcpdev

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Re-export MCP SDK resource types for public API.
type (
	// ReadResourceRequest is the request passed to resource handlers.
	ReadResourceRequest = mcp.ReadResourceRequest

	// ReadResourceResult is the server's response to a resource read.
	ReadResourceResult = mcp.ReadResourceResult

	// ResourceContents is one entry of a ReadResourceResult.
	ResourceContents = mcp.ResourceContents

	// ResourceHandler is the function signature for resource handlers.
	ResourceHandler = mcp.ResourceHandler
)

// Resource describes a resource registered with a Server. The resource name
// is its key in the map passed to RegisterResources.
type Resource struct {
	URI         string
	Title       string
	Description string
	MIMEType    string

	// Handler serves resources/read requests and command-line invocations.
	Handler mcp.ResourceHandler

	// TestURI converts one raw command-line string into the URI to read.
	// It may return a default when input is empty; the dispatcher never
	// supplies one. A resource without TestURI cannot be invoked from the
	// command line.
	TestURI func(input string) (string, error)
}

func (r *Resource) definition(name string) *mcp.Resource {
	return &mcp.Resource{
		Name:        name,
		URI:         r.URI,
		Title:       r.Title,
		Description: r.Description,
		MIMEType:    r.MIMEType,
	}
}
