// Package sqlexec executes batches of SQL setup and teardown statements
// against an opaque execution channel, with context substitution, statement
// splitting, and guaranteed connection release.
package sqlexec

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sqlscenario/internal/platform/metrics"
	"sqlscenario/pkg/sqlsplit"
)

// Channel runs one SQL statement at a time against a live connection.
// Implementations wrap a single acquired connection; Release must be safe to
// call exactly once after the last Exec.
type Channel interface {
	Exec(ctx context.Context, stmt string) error
	Release(ctx context.Context) error
}

// ChannelOpener acquires a fresh Channel for one invocation. Channels are
// never shared across invocations.
type ChannelOpener interface {
	Open(ctx context.Context) (Channel, error)
}

// StatementError annotates a channel failure with the exact statement that
// was executing and its provenance label.
type StatementError struct {
	Statement string
	Source    string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("executing %q (%s): %v", e.Statement, e.Source, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Executor runs statement groups strictly sequentially over one channel per
// run. The zero value is not usable; construct with New.
type Executor struct {
	opener  ChannelOpener
	baseDir string
	split   SplitFunc
	log     *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures an Executor.
type Option func(*Executor)

// WithBaseDir sets the directory against which file sources are resolved.
func WithBaseDir(dir string) Option {
	return func(e *Executor) { e.baseDir = dir }
}

// WithLogger sets the structured logger used for per-statement debug logs.
func WithLogger(log *slog.Logger) Option {
	return func(e *Executor) { e.log = log }
}

// WithSplitter replaces the default statement splitter.
func WithSplitter(split SplitFunc) Option {
	return func(e *Executor) { e.split = split }
}

// WithMetrics replaces the shared default metrics set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// New constructs an Executor that acquires channels from opener.
func New(opener ChannelOpener, opts ...Option) *Executor {
	e := &Executor{
		opener:  opener,
		baseDir: "testdata",
		split:   sqlsplit.Statements,
		log:     slog.Default(),
		metrics: metrics.Default(),
		tracer:  otel.Tracer("sqlscenario/sqlexec"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run builds the execution plan for sources and executes every statement,
// group by group and statement by statement, halting at the first failure.
// A plan with zero statements returns nil without touching the channel.
// The acquired channel is released exactly once, success or failure.
func (e *Executor) Run(ctx context.Context, cmap ContextMap, sources []string, fromFiles bool) error {
	groups, err := BuildPlan(cmap, sources, e.baseDir, fromFiles, e.split)
	if err != nil {
		return err
	}
	total := statementCount(groups)
	if total == 0 {
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "sqlexec.run",
		trace.WithAttributes(
			attribute.Int("sql.statement_count", total),
			attribute.Int("sql.group_count", len(groups)),
		))
	defer span.End()

	start := time.Now()
	defer func() { e.metrics.ObserveRunDuration(time.Since(start)) }()

	ch, err := e.opener.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open execution channel: %w", err)
	}

	runErr := e.runAll(ctx, ch, groups)
	releaseErr := ch.Release(ctx)

	if runErr != nil {
		span.RecordError(runErr)
		return runErr
	}
	if releaseErr != nil {
		span.RecordError(releaseErr)
		return fmt.Errorf("release execution channel: %w", releaseErr)
	}
	return nil
}

func (e *Executor) runAll(ctx context.Context, ch Channel, groups []StatementGroup) error {
	for _, group := range groups {
		for _, stmt := range group.Statements {
			e.log.DebugContext(ctx, "executing statement",
				slog.String("source", group.Source),
				slog.String("sql", stmt),
			)
			if err := ch.Exec(ctx, stmt); err != nil {
				e.metrics.IncrementStatementFailures()
				return &StatementError{Statement: stmt, Source: group.Source, Err: err}
			}
			e.metrics.IncrementStatementsExecuted()
		}
	}
	return nil
}
