// sqlrun applies SQL files or literal statements, with {key} context
// substitution, against a live database. It runs the same plan/executor code
// path the test scenarios use, so fixtures behave identically inside and
// outside the test runner.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sqlscenario/internal/platform/config"
	"sqlscenario/pkg/sqlexec"
)

var (
	flagDSN         string
	flagBaseDir     string
	flagContext     []string
	flagContextFile string
	flagLiteral     bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlrun [flags] <file>...",
	Short: "Apply SQL files with context substitution against a database",
	Long: `Apply SQL files (or, with --sql, literal statements) against a database.

{key} tokens in the SQL are substituted from the default context mapping,
an optional YAML context file, and repeated --context key=value flags, in
that override order. Statements run sequentially; the first failure stops
the run and reports the offending statement and its source.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDSN, "dsn", "", "database connection string (defaults to $DATABASE_URL)")
	rootCmd.Flags().StringVar(&flagBaseDir, "base-dir", ".", "directory relative file arguments resolve against")
	rootCmd.Flags().StringArrayVar(&flagContext, "context", nil, "substitution entry as key=value (repeatable)")
	rootCmd.Flags().StringVar(&flagContextFile, "context-file", "", "YAML file of substitution entries")
	rootCmd.Flags().BoolVar(&flagLiteral, "sql", false, "treat arguments as literal SQL instead of filenames")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log each statement as it executes")

	_ = viper.BindPFlag("dsn", rootCmd.Flags().Lookup("dsn"))
	_ = viper.BindEnv("dsn", "DATABASE_URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("sqlrun failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	dsn := viper.GetString("dsn")
	if dsn == "" {
		return fmt.Errorf("no database configured: pass --dsn or set DATABASE_URL")
	}

	cmap, err := buildContext()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	exec := sqlexec.New(sqlexec.NewSQLOpener(db),
		sqlexec.WithBaseDir(flagBaseDir),
		sqlexec.WithLogger(logger),
	)
	if err := exec.Run(ctx, cmap, args, !flagLiteral); err != nil {
		return err
	}

	logger.Info("applied", slog.Int("sources", len(args)))
	return nil
}

// buildContext layers the default mapping, the YAML context file, and the
// --context flags, later layers winning.
func buildContext() (sqlexec.ContextMap, error) {
	cmap := sqlexec.ContextMap(config.Load().ContextDefaults())

	if flagContextFile != "" {
		raw, err := os.ReadFile(flagContextFile)
		if err != nil {
			return nil, fmt.Errorf("read context file: %w", err)
		}
		var fromFile map[string]string
		if err := yaml.Unmarshal(raw, &fromFile); err != nil {
			return nil, fmt.Errorf("parse context file: %w", err)
		}
		cmap = sqlexec.Merge(cmap, fromFile)
	}

	flags := make(sqlexec.ContextMap, len(flagContext))
	for _, entry := range flagContext {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("bad --context entry %q: want key=value", entry)
		}
		flags[key] = value
	}
	return sqlexec.Merge(cmap, flags), nil
}
