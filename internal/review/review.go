// Package review runs the format, lint, and type-check pass behind the review tool.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wagiedev/mcpdev-go/internal/cli"
	"github.com/wagiedev/mcpdev-go/internal/subprocess"
)

const (
	passGlyph = "✅"
	failGlyph = "❌"
)

// Config selects the commands a review runs. Commands run in Dir.
type Config struct {
	Dir         string
	Formatter   subprocess.Command
	Linter      subprocess.Command
	TypeChecker subprocess.Command
}

// DefaultConfig formats with gofmt, lints with go vet, and type-checks with go build.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		Formatter:   subprocess.Command{Name: "gofmt", Args: []string{"-w", "."}},
		Linter:      subprocess.Command{Name: "go", Args: []string{"vet", "./..."}},
		TypeChecker: subprocess.Command{Name: "go", Args: []string{"build", "./..."}},
	}
}

// Step is one completed review command.
type Step struct {
	Name   string
	Result *subprocess.Result
}

// Report holds the outcome of each review command.
type Report struct {
	Format    *subprocess.Result
	Lint      *subprocess.Result
	TypeCheck *subprocess.Result
}

// Passed reports whether lint and type-check both succeeded.
// The formatter's exit status does not affect the outcome.
func (r *Report) Passed() bool {
	return r.Lint.Success() && r.TypeCheck.Success()
}

// Summary renders the three-line review summary.
func (r *Report) Summary() string {
	overall := passGlyph + " Review passed"
	if !r.Passed() {
		overall = failGlyph + " Review found issues"
	}

	return strings.Join([]string{
		overall,
		"Lint: " + statusLine(r.Lint),
		"Type check: " + statusLine(r.TypeCheck),
	}, "\n")
}

func statusLine(result *subprocess.Result) string {
	if result.Success() {
		return passGlyph
	}

	return strings.TrimSpace(failGlyph + " " + strings.TrimSpace(result.Stderr))
}

// Reviewer runs review commands sequentially.
type Reviewer struct {
	cfg    Config
	runner subprocess.Runner
	log    *slog.Logger
	lookup func(ctx context.Context, name string) (string, error)
}

// New creates a Reviewer. Executables are resolved with cli.Discoverer.
func New(cfg Config, runner subprocess.Runner, log *slog.Logger) *Reviewer {
	log = log.With("component", "review")

	return &Reviewer{
		cfg:    cfg,
		runner: runner,
		log:    log,
		lookup: func(ctx context.Context, name string) (string, error) {
			return cli.NewDiscoverer(&cli.Config{Name: name, Logger: log}).Discover(ctx)
		},
	}
}

// Run runs the formatter, linter, and type-checker in order. onStep, if
// non-nil, is called after each command completes. An error means a command
// could not be spawned or awaited; failing lint or type-check is not an error.
func (r *Reviewer) Run(ctx context.Context, onStep func(done, total int, step Step)) (*Report, error) {
	names := [...]string{"format", "lint", "type check"}
	cmds := [...]subprocess.Command{r.cfg.Formatter, r.cfg.Linter, r.cfg.TypeChecker}
	results := make([]*subprocess.Result, len(cmds))

	for i, cmd := range cmds {
		result, err := r.run(ctx, cmd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}

		results[i] = result

		if onStep != nil {
			onStep(i+1, len(cmds), Step{Name: names[i], Result: result})
		}
	}

	report := &Report{Format: results[0], Lint: results[1], TypeCheck: results[2]}

	r.log.Info("Review finished", "passed", report.Passed())

	return report, nil
}

func (r *Reviewer) run(ctx context.Context, cmd subprocess.Command) (*subprocess.Result, error) {
	path, err := r.lookup(ctx, cmd.Name)
	if err != nil {
		return nil, err
	}

	cmd.Name = path
	if cmd.Dir == "" {
		cmd.Dir = r.cfg.Dir
	}

	return r.runner.Run(ctx, cmd)
}

// Summarize runs a review and renders its summary. A failure to run any
// command is reported as a single error line instead of the summary.
func (r *Reviewer) Summarize(ctx context.Context, onStep func(done, total int, step Step)) string {
	report, err := r.Run(ctx, onStep)
	if err != nil {
		r.log.Warn("Review could not run", "error", err)

		return "Error during review: " + err.Error()
	}

	return report.Summary()
}
