package scenario

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlscenario/pkg/sqlexec"
)

func TestGroupRunsSetupBodyNestedTestsTeardown(t *testing.T) {
	rec := &recorder{}
	cfg := Config{
		Opener:   &recOpener{rec: rec},
		Defaults: sqlexec.ContextMap{"database": "app_test"},
	}
	groups := NewGroupBuilder(cfg, false)
	tests := NewTestBuilder(cfg, false)

	groups.Run(t, GroupScenario{
		Name:     "billing",
		Setup:    []string{"CREATE TABLE {database}_invoices (id int)"},
		Teardown: []string{"DROP TABLE {database}_invoices"},
		Body: func(t *testing.T, gctx *GroupContext) {
			rec.add("group body")

			tests.Run(t, Scenario{
				Name:     "nested",
				Context:  gctx,
				Setup:    []string{"INSERT INTO {database}_invoices VALUES (1)"},
				Teardown: []string{"DELETE FROM {database}_invoices"},
				Body: func(*testing.T) error {
					rec.add("nested body")
					return nil
				},
			})
		},
	})

	assert.Equal(t, []string{
		"sql: CREATE TABLE app_test_invoices (id int)",
		"release",
		"group body",
		"sql: INSERT INTO app_test_invoices VALUES (1)",
		"release",
		"nested body",
		"sql: DELETE FROM app_test_invoices",
		"release",
		"sql: DROP TABLE app_test_invoices",
		"release",
	}, rec.events, "group teardown runs after every nested test")
}

func TestGroupContextValuesReachNestedSQL(t *testing.T) {
	rec := &recorder{}
	cfg := Config{
		Opener:   &recOpener{rec: rec},
		Defaults: sqlexec.ContextMap{"database": "app_test"},
	}
	groups := NewGroupBuilder(cfg, false)
	tests := NewTestBuilder(cfg, false)

	groups.Run(t, GroupScenario{
		Name:    "reports",
		Context: Overrides{"database": "reports_db"},
		Body: func(t *testing.T, gctx *GroupContext) {
			tests.Run(t, Scenario{
				Name:    "uses group mapping",
				Context: gctx,
				Setup:   []string{"USE {database} -- group {groupName}"},
				Body:    func(*testing.T) error { return nil },
			})
		},
	})

	assert.Contains(t, rec.events, "sql: USE reports_db -- group reports")
}

// fakeGroupHooks records scheduled cleanups so tests can fire them the way
// the test runner would, last registered first.
type fakeGroupHooks struct {
	cleanups []func()
	failures []string
}

func (f *fakeGroupHooks) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

func (f *fakeGroupHooks) Errorf(format string, args ...any) {
	f.failures = append(f.failures, fmt.Sprintf(format, args...))
}

func (f *fakeGroupHooks) runCleanups() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
}

func TestGroupSetupFailureStillGetsTeardownAttempt(t *testing.T) {
	rec := &recorder{}
	opener := &recOpener{rec: rec, failOn: "CREATE TABLE broken (id int)", failWith: errors.New("permission denied")}
	groups := NewGroupBuilder(Config{Opener: opener}, false)

	gctx := newGroupContext("broken group", nil, nil)
	hooks := &fakeGroupHooks{}

	err := groups.runGroup(hooks, t, gctx, GroupScenario{
		Name:     "broken group",
		Setup:    []string{"CREATE TABLE broken (id int)"},
		Teardown: []string{"DROP TABLE IF EXISTS broken"},
		Body: func(*testing.T, *GroupContext) {
			rec.add("group body")
		},
	})

	require.Error(t, err)
	var stmtErr *sqlexec.StatementError
	assert.ErrorAs(t, err, &stmtErr)
	assert.NotContains(t, rec.events, "group body", "body never runs when group setup fails")
	assert.NotContains(t, rec.events, "sql: DROP TABLE IF EXISTS broken", "teardown waits for the cleanup hook")

	hooks.runCleanups()

	assert.Contains(t, rec.events, "sql: DROP TABLE IF EXISTS broken",
		"teardown was scheduled before setup ran, so it still fires")
	assert.Empty(t, hooks.failures)
}

func TestGroupTeardownFailureReportsThroughHooks(t *testing.T) {
	rec := &recorder{}
	opener := &recOpener{rec: rec, failOn: "DROP TABLE locked", failWith: errors.New("table is locked")}
	groups := NewGroupBuilder(Config{Opener: opener}, false)

	gctx := newGroupContext("locked group", nil, nil)
	hooks := &fakeGroupHooks{}

	err := groups.runGroup(hooks, t, gctx, GroupScenario{
		Name:     "locked group",
		Teardown: []string{"DROP TABLE locked"},
		Body:     func(*testing.T, *GroupContext) {},
	})
	require.NoError(t, err)

	hooks.runCleanups()

	require.Len(t, hooks.failures, 1)
	assert.Contains(t, hooks.failures[0], "scenario group teardown")
	assert.Contains(t, hooks.failures[0], "DROP TABLE locked")
}

func TestGroupSkipExecutesNothing(t *testing.T) {
	rec := &recorder{}
	groups := NewGroupBuilder(Config{Opener: &recOpener{rec: rec}}, false)

	groups.Skip(t, GroupScenario{
		Name:  "skipped group",
		Setup: []string{"CREATE TABLE t (id int)"},
		Body: func(*testing.T, *GroupContext) {
			rec.add("group body")
		},
	})

	assert.Empty(t, rec.events)
}

func TestGroupWithoutSQLIsJustASubtest(t *testing.T) {
	rec := &recorder{}
	groups := NewGroupBuilder(Config{Opener: &recOpener{rec: rec}}, false)

	groups.Run(t, GroupScenario{
		Name: "plain",
		Body: func(*testing.T, *GroupContext) {
			rec.add("group body")
		},
	})

	assert.Equal(t, []string{"group body"}, rec.events, "no statements means no channel activity")
}
