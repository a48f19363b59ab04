package cli

import (
	"strings"

	"github.com/wagiedev/mcpdev-go/internal/errors"
)

// Invocation is a CLI test invocation parsed from process arguments.
type Invocation struct {
	Kind  errors.Kind
	Name  string
	Input string
}

// ParseInvocation reports whether args request a CLI test invocation.
// The tokens after the name are joined by single spaces into Input.
func ParseInvocation(args []string) (Invocation, bool) {
	if len(args) < 2 {
		return Invocation{}, false
	}

	kind := errors.Kind(args[0])
	if kind != errors.KindTool && kind != errors.KindResource {
		return Invocation{}, false
	}

	return Invocation{
		Kind:  kind,
		Name:  args[1],
		Input: strings.Join(args[2:], " "),
	}, true
}
