// Package scenario wraps Go tests and subtests with SQL setup and teardown
// statements. Setup runs before the wrapped body, teardown runs after the
// body settles on every path, and {identifier} tokens in the SQL are filled
// from a context mapping merged from process-wide defaults and caller
// overrides.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"sqlscenario/internal/platform/config"
	"sqlscenario/pkg/sqlexec"
	"sqlscenario/pkg/sqlsplit"
)

// ErrInvalidScenario marks a scenario definition a builder cannot run.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario describes one test wrapped with SQL setup and teardown.
// Name and Body are mandatory; Context, Setup, and Teardown are optional.
type Scenario struct {
	Name string
	// Context supplies substitution overrides; nil means defaults only.
	Context Context
	// Setup and Teardown hold literal SQL or filenames, depending on the
	// builder family. Blank entries are ignored.
	Setup    []string
	Teardown []string
	// Body reports failure through its error return (or by panicking, which
	// the builder converts). t.Fatal inside the body cannot be observed by
	// the Failing family.
	Body func(t *testing.T) error
}

func (s Scenario) validate(family string) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: %s requires a name (setup=%v teardown=%v)", ErrInvalidScenario, family, s.Setup, s.Teardown)
	case s.Body == nil:
		return fmt.Errorf("%w: %s %q requires a body", ErrInvalidScenario, family, s.Name)
	}
	return nil
}

// Config parameterizes a builder family.
type Config struct {
	// Opener acquires one execution channel per scenario invocation.
	Opener sqlexec.ChannelOpener
	// BaseDir resolves relative filenames for the file families.
	// Defaults to "testdata".
	BaseDir string
	// Defaults is the process-wide substitution mapping. When nil it is
	// loaded once from the environment.
	Defaults sqlexec.ContextMap
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Splitter defaults to sqlsplit.Statements.
	Splitter sqlexec.SplitFunc
}

func (cfg Config) executor() (*sqlexec.Executor, sqlexec.ContextMap) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "testdata"
	}
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = config.Load().ContextDefaults()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	split := cfg.Splitter
	if split == nil {
		split = sqlsplit.Statements
	}
	exec := sqlexec.New(cfg.Opener,
		sqlexec.WithBaseDir(baseDir),
		sqlexec.WithLogger(log),
		sqlexec.WithSplitter(split),
	)
	return exec, defaults
}

// TestBuilder registers individual tests wrapped with setup and teardown SQL.
type TestBuilder struct {
	family    string
	exec      *sqlexec.Executor
	defaults  sqlexec.ContextMap
	fromFiles bool
}

// NewTestBuilder builds a test-scoped family. With fromFiles set, setup and
// teardown entries name SQL files under cfg.BaseDir instead of literal SQL.
func NewTestBuilder(cfg Config, fromFiles bool) *TestBuilder {
	family := "sql test"
	if fromFiles {
		family = "sql file test"
	}
	exec, defaults := cfg.executor()
	return &TestBuilder{
		family:    family,
		exec:      exec,
		defaults:  defaults,
		fromFiles: fromFiles,
	}
}

type mode int

const (
	modeNormal mode = iota
	modeFocus
	modeSkip
	modeFailing
)

// Run registers the scenario as a subtest. While the focus gate (the
// SCENARIO_FOCUS environment variable) is set, Run scenarios skip.
func (b *TestBuilder) Run(t *testing.T, sc Scenario) {
	t.Helper()
	b.register(t, sc, modeNormal)
}

// Only registers a scenario that runs even while the focus gate is set.
func (b *TestBuilder) Only(t *testing.T, sc Scenario) {
	t.Helper()
	b.register(t, sc, modeFocus)
}

// Skip registers the scenario as a skipped subtest; no SQL executes.
func (b *TestBuilder) Skip(t *testing.T, sc Scenario) {
	t.Helper()
	b.register(t, sc, modeSkip)
}

// Failing registers a scenario whose body is expected to fail. The body's
// failure is swallowed; a passing body fails the test instead. Setup and
// teardown failures are never expected and fail the test as usual.
func (b *TestBuilder) Failing(t *testing.T, sc Scenario) {
	t.Helper()
	b.register(t, sc, modeFailing)
}

func (b *TestBuilder) register(t *testing.T, sc Scenario, m mode) {
	t.Helper()
	if err := sc.validate(b.family); err != nil {
		t.Fatal(err)
	}
	cmap := resolveContext(sc.Context, b.defaults)
	t.Run(sc.Name, func(t *testing.T) {
		switch m {
		case modeSkip:
			t.Skip("scenario skipped")
		case modeNormal:
			if focusActive() {
				t.Skipf("skipped while %s is set", focusEnv)
			}
		}
		out := b.invoke(context.Background(), t, cmap, sc)
		report(t, out, m == modeFailing)
	})
}

// outcome records what actually ran, so reporting stays a pure function of it.
type outcome struct {
	setupErr    error
	bodyRan     bool
	bodyErr     error
	teardownRan bool
	teardownErr error
}

// invoke runs setup, body, and teardown. Teardown runs whenever setup
// succeeded, regardless of the body's outcome; a setup failure skips both
// the body and teardown.
func (b *TestBuilder) invoke(ctx context.Context, t *testing.T, cmap sqlexec.ContextMap, sc Scenario) outcome {
	var out outcome
	if out.setupErr = b.exec.Run(ctx, cmap, sc.Setup, b.fromFiles); out.setupErr != nil {
		return out
	}
	out.bodyRan = true
	out.bodyErr = runBody(t, sc.Body)
	out.teardownRan = true
	out.teardownErr = b.exec.Run(ctx, cmap, sc.Teardown, b.fromFiles)
	return out
}

func runBody(t *testing.T, body func(*testing.T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scenario body panicked: %v", r)
		}
	}()
	return body(t)
}

// verdict is what an outcome means for the test: at most one fatal failure
// plus any informational log lines.
type verdict struct {
	failure string
	logs    []string
}

// evaluate decides the verdict for an outcome, kept separate from testing.T
// so every branch stays testable. A teardown failure is the fatal cause even
// when the body also failed; the body failure is then only logged. This
// mirrors cleanup-block semantics where the last failure on the exit path
// wins.
func evaluate(out outcome, expectBodyFailure bool) verdict {
	if out.setupErr != nil {
		return verdict{failure: fmt.Sprintf("scenario setup: %v", out.setupErr)}
	}
	if out.teardownErr != nil {
		v := verdict{failure: fmt.Sprintf("scenario teardown: %v", out.teardownErr)}
		if out.bodyErr != nil {
			v.logs = append(v.logs, fmt.Sprintf("scenario body failure masked by teardown failure: %v", out.bodyErr))
		}
		return v
	}
	if expectBodyFailure {
		if out.bodyErr == nil {
			return verdict{failure: "scenario body was expected to fail but passed"}
		}
		return verdict{logs: []string{fmt.Sprintf("scenario body failed as expected: %v", out.bodyErr)}}
	}
	if out.bodyErr != nil {
		return verdict{failure: fmt.Sprintf("scenario body: %v", out.bodyErr)}
	}
	return verdict{}
}

func report(t *testing.T, out outcome, expectBodyFailure bool) {
	t.Helper()
	v := evaluate(out, expectBodyFailure)
	for _, line := range v.logs {
		t.Log(line)
	}
	if v.failure != "" {
		t.Fatal(v.failure)
	}
}

const focusEnv = "SCENARIO_FOCUS"

func focusActive() bool {
	return os.Getenv(focusEnv) != ""
}
