package scenario

import (
	"sqlscenario/pkg/sqlexec"
)

// KeyGroupName is the substitution key carrying the enclosing group's name.
const KeyGroupName = "groupName"

// Context selects how a scenario's effective substitution mapping is built.
// An Overrides value is merged over the process defaults; a *GroupContext is
// used verbatim so group-level values thread through to nested scenarios
// unchanged.
type Context interface {
	resolve(defaults sqlexec.ContextMap) sqlexec.ContextMap
}

// Overrides is a fresh caller-supplied mapping. Its keys win over the
// defaults on collision.
type Overrides sqlexec.ContextMap

func (o Overrides) resolve(defaults sqlexec.ContextMap) sqlexec.ContextMap {
	return sqlexec.Merge(defaults, sqlexec.ContextMap(o))
}

// GroupContext is the resolved mapping of an enclosing scenario group.
// Group bodies receive it and hand it to nested scenarios, which then skip
// the default merge entirely.
type GroupContext struct {
	name   string
	values sqlexec.ContextMap
}

// Override order: group-name marker, then defaults, then caller overrides.
func newGroupContext(name string, defaults sqlexec.ContextMap, overrides Overrides) *GroupContext {
	values := sqlexec.Merge(sqlexec.ContextMap{KeyGroupName: name}, defaults)
	values = sqlexec.Merge(values, sqlexec.ContextMap(overrides))
	return &GroupContext{name: name, values: values}
}

func (g *GroupContext) resolve(sqlexec.ContextMap) sqlexec.ContextMap {
	return g.values
}

// Name returns the group's name.
func (g *GroupContext) Name() string { return g.name }

// Value returns the mapped value for key, or the empty string when absent.
func (g *GroupContext) Value(key string) string { return g.values[key] }

func resolveContext(c Context, defaults sqlexec.ContextMap) sqlexec.ContextMap {
	if c == nil {
		return sqlexec.Merge(defaults, nil)
	}
	return c.resolve(defaults)
}
