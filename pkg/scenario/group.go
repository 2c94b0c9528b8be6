package scenario

import (
	"context"
	"fmt"
	"testing"

	"sqlscenario/pkg/sqlexec"
)

// GroupScenario describes a group of tests sharing one setup/teardown pair
// and one resolved context mapping.
type GroupScenario struct {
	Name string
	// Context supplies caller overrides merged into the group mapping.
	Context Overrides
	// Setup and Teardown hold literal SQL or filenames, depending on the
	// builder family. Setup runs once before the group body registers its
	// tests; teardown runs once after every nested test has finished.
	Setup    []string
	Teardown []string
	// Body runs synchronously during group registration. Nested scenarios
	// should pass gctx as their Context so group values thread through.
	Body func(t *testing.T, gctx *GroupContext)
}

func (s GroupScenario) validate(family string) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: %s requires a name (setup=%v teardown=%v)", ErrInvalidScenario, family, s.Setup, s.Teardown)
	case s.Body == nil:
		return fmt.Errorf("%w: %s %q requires a body", ErrInvalidScenario, family, s.Name)
	}
	return nil
}

// GroupBuilder registers groups of tests wrapped with shared SQL setup and
// teardown.
type GroupBuilder struct {
	family    string
	exec      *sqlexec.Executor
	defaults  sqlexec.ContextMap
	fromFiles bool
}

// NewGroupBuilder builds a group-scoped family. With fromFiles set, setup
// and teardown entries name SQL files under cfg.BaseDir.
func NewGroupBuilder(cfg Config, fromFiles bool) *GroupBuilder {
	family := "sql group"
	if fromFiles {
		family = "sql file group"
	}
	exec, defaults := cfg.executor()
	return &GroupBuilder{
		family:    family,
		exec:      exec,
		defaults:  defaults,
		fromFiles: fromFiles,
	}
}

// Run registers the group as a subtest. The focus gate applies to the
// nested test scenarios, not to the group itself, so a focused test inside
// an unfocused group still runs.
func (b *GroupBuilder) Run(t *testing.T, gs GroupScenario) {
	t.Helper()
	b.register(t, gs, false)
}

// Only is the focus-family counterpart of Run. Groups are never gated, so
// it differs from Run only in intent; mark the nested tests with Only to
// keep them running while the gate is set.
func (b *GroupBuilder) Only(t *testing.T, gs GroupScenario) {
	t.Helper()
	b.register(t, gs, false)
}

// Skip registers the group as a skipped subtest; no SQL executes and the
// body never runs.
func (b *GroupBuilder) Skip(t *testing.T, gs GroupScenario) {
	t.Helper()
	b.register(t, gs, true)
}

func (b *GroupBuilder) register(t *testing.T, gs GroupScenario, skip bool) {
	t.Helper()
	if err := gs.validate(b.family); err != nil {
		t.Fatal(err)
	}
	gctx := newGroupContext(gs.Name, b.defaults, gs.Context)
	t.Run(gs.Name, func(t *testing.T) {
		if skip {
			t.Skip("scenario group skipped")
		}
		if err := b.runGroup(t, t, gctx, gs); err != nil {
			t.Fatal(err)
		}
	})
}

// groupHooks is the slice of testing.T the group lifecycle needs, split out
// so the setup-failure path stays drivable without a real subtest.
type groupHooks interface {
	Cleanup(func())
	Errorf(format string, args ...any)
}

// runGroup schedules teardown, runs setup, and invokes the group body.
// Teardown is scheduled before setup runs, so a failed group setup still
// gets its teardown attempt. Cleanup also waits for parallel nested tests,
// which is exactly the after-the-group hook point. A setup failure is
// returned instead of reported so the caller controls how the test dies.
func (b *GroupBuilder) runGroup(hooks groupHooks, bodyT *testing.T, gctx *GroupContext, gs GroupScenario) error {
	ctx := context.Background()

	hooks.Cleanup(func() {
		if err := b.exec.Run(ctx, gctx.values, gs.Teardown, b.fromFiles); err != nil {
			hooks.Errorf("scenario group teardown: %v", err)
		}
	})

	if err := b.exec.Run(ctx, gctx.values, gs.Setup, b.fromFiles); err != nil {
		return fmt.Errorf("scenario group setup: %w", err)
	}

	gs.Body(bodyT, gctx)
	return nil
}
