package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sqlscenario/pkg/sqlexec"
)

func TestResolveNilContextCopiesDefaults(t *testing.T) {
	defaults := sqlexec.ContextMap{"database": "app_test"}

	resolved := resolveContext(nil, defaults)

	assert.Equal(t, defaults, resolved)

	resolved["database"] = "mutated"
	assert.Equal(t, "app_test", defaults["database"])
}

func TestResolveOverridesMergeOverDefaults(t *testing.T) {
	defaults := sqlexec.ContextMap{"database": "app_test", "districtDatabase": "district_test"}

	resolved := resolveContext(Overrides{"database": "other", "extra": "x"}, defaults)

	assert.Equal(t, sqlexec.ContextMap{
		"database":         "other",
		"districtDatabase": "district_test",
		"extra":            "x",
	}, resolved)
	assert.Equal(t, "app_test", defaults["database"], "defaults never mutated")
}

func TestGroupContextContainsMarkerDefaultsAndOverrides(t *testing.T) {
	defaults := sqlexec.ContextMap{"database": "app_test", "districtDatabase": "district_test"}

	gctx := newGroupContext("billing", defaults, Overrides{"database": "billing_test"})

	assert.Equal(t, "billing", gctx.Name())
	assert.Equal(t, "billing", gctx.Value(KeyGroupName))
	assert.Equal(t, "billing_test", gctx.Value("database"), "caller overrides win")
	assert.Equal(t, "district_test", gctx.Value("districtDatabase"))
}

func TestGroupContextWithoutOverrides(t *testing.T) {
	defaults := sqlexec.ContextMap{"database": "app_test"}

	gctx := newGroupContext("reports", defaults, nil)

	assert.Equal(t, sqlexec.ContextMap{
		KeyGroupName: "reports",
		"database":   "app_test",
	}, gctx.values)
}

func TestGroupContextResolvesVerbatim(t *testing.T) {
	gctx := newGroupContext("billing", sqlexec.ContextMap{"database": "app_test"}, nil)

	resolved := resolveContext(gctx, sqlexec.ContextMap{"database": "somewhere_else"})

	assert.Equal(t, gctx.values, resolved)
	assert.Equal(t, "app_test", resolved["database"], "group mapping passes through unmerged")
}
