package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"timetable/internal/config"
	"timetable/internal/entity"
	"timetable/internal/output"
	"timetable/internal/store"
)

// errDrift is returned by verify when the database does not match.
var errDrift = errors.New("database schema does not match")

type rootOptions struct {
	configPath string
	format     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:          "timetable",
		Short:        "University timetable storage on MySQL",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the TOML configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "Output format: sql, json or human (overrides output.format)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.level)")

	rootCmd.AddCommand(schemaCmd(opts))
	rootCmd.AddCommand(migrateCmd(opts))
	rootCmd.AddCommand(dropCmd(opts))
	rootCmd.AddCommand(verifyCmd(opts))
	rootCmd.AddCommand(dumpCmd(opts))
	return rootCmd
}

// load reads the configuration file, if any, and applies the environment and
// the command line overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) formatter(cfg *config.Config) (output.Formatter, error) {
	return output.NewFormatter(cfg.Output.Format)
}

// withSession loads the configuration, connects and runs fn.
func (o *rootOptions) withSession(cmd *cobra.Command, fn func(*config.Config, *slog.Logger, *store.Session) error) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	storeOpts, err := cfg.StoreOptions(logger)
	if err != nil {
		return err
	}
	return store.WithSession(cmd.Context(), storeOpts, func(s *store.Session) error {
		return fn(cfg, logger, s)
	})
}

func write(w io.Writer, out string, err error) error {
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func schemaCmd(opts *rootOptions) *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the statements that create (or drop) every table",
		Long: `Schema prints the blueprint of every timetable table without touching a
database. Tables are listed in dependency order; with --drop they are dropped
in reverse order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			f, err := opts.formatter(cfg)
			if err != nil {
				return err
			}
			out, err := f.FormatSchema(entity.Blueprints(), drop)
			return write(cmd.OutOrStdout(), out, err)
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "Print DROP statements instead of CREATE")
	return cmd
}

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create every missing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(_ *config.Config, _ *slog.Logger, s *store.Session) error {
				if err := s.Migrate(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(entity.Tables()))
				return nil
			})
		},
	}
}

func dropCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every timetable table and its rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("drop deletes every row; pass --force to confirm")
			}
			return opts.withSession(cmd, func(_ *config.Config, _ *slog.Logger, s *store.Session) error {
				if err := s.Drop(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Dropped timetable tables")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Confirm that all timetable data is deleted")
	return cmd
}

func verifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare the live tables with the blueprints",
		Long: `Verify reads SHOW CREATE TABLE for every table and compares it with the
blueprint. It exits with a non-zero status when a table is missing or differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(cfg *config.Config, _ *slog.Logger, s *store.Session) error {
				f, err := opts.formatter(cfg)
				if err != nil {
					return err
				}
				report, err := s.Verify(cmd.Context())
				if err != nil {
					return err
				}
				out, err := f.FormatReport(report)
				if err := write(cmd.OutOrStdout(), out, err); err != nil {
					return err
				}
				if !report.OK() {
					return fmt.Errorf("%w: %d of %d tables", errDrift, len(report.Failed()), len(report.Tables))
				}
				return nil
			})
		},
	}
}

func dumpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Load the whole timetable and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(cfg *config.Config, logger *slog.Logger, s *store.Session) error {
				f, err := opts.formatter(cfg)
				if err != nil {
					return err
				}
				catalog, err := s.Load(cmd.Context())
				if err != nil {
					return err
				}
				logger.Debug("catalog loaded", "subjects", len(catalog.Subjects), "schedules", len(catalog.GroupWeekSchedules))
				out, err := f.FormatCatalog(catalog)
				return write(cmd.OutOrStdout(), out, err)
			})
		},
	}
}
