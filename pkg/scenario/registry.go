package scenario

// The four helper families, bound once at the composition root (typically
// TestMain) via Register. Nil until then; packages that prefer isolated
// builders can construct their own with NewTestBuilder and NewGroupBuilder.
var (
	// SQLTest wraps a single test with literal setup/teardown SQL.
	SQLTest *TestBuilder
	// SQLFileTest wraps a single test with setup/teardown SQL files.
	SQLFileTest *TestBuilder
	// SQLGroup wraps a group of tests with literal setup/teardown SQL.
	SQLGroup *GroupBuilder
	// SQLFileGroup wraps a group of tests with setup/teardown SQL files.
	SQLFileGroup *GroupBuilder
)

// Register binds the four families to one shared configuration.
func Register(cfg Config) {
	SQLTest = NewTestBuilder(cfg, false)
	SQLFileTest = NewTestBuilder(cfg, true)
	SQLGroup = NewGroupBuilder(cfg, false)
	SQLFileGroup = NewGroupBuilder(cfg, true)
}
