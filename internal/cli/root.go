// Package cli provides the countrycat command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"countrycat/internal/config"
	"countrycat/internal/country"
	"countrycat/internal/logger"
	"countrycat/internal/source"
	"countrycat/internal/trace"
	"countrycat/internal/ui"
)

// Version is set at build time.
var Version = "0.1.0"

// shutdownTimeout bounds the trace flush on exit.
const shutdownTimeout = 5 * time.Second

// env is what every command needs once config has been loaded.
type env struct {
	cfgFile string

	cfg    *config.Config
	log    *logger.Logger
	tracer *trace.Provider
	source source.Source
}

// fetchOrEmpty fetches the catalog. A failed fetch is logged and yields no
// records, the same way the interactive view degrades.
func (e *env) fetchOrEmpty(ctx context.Context) []country.Record {
	records, err := e.source.Fetch(ctx)
	if err != nil {
		e.log.Error("fetch countries failed", "err", err)
		return nil
	}
	return records
}

func (e *env) close() {
	if e.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.tracer.Shutdown(ctx); err != nil && e.log != nil {
			e.log.Warn("trace shutdown failed", "err", err)
		}
	}
	if e.log != nil {
		_ = e.log.Close()
	}
}

// NewRootCmd creates the root command. Running it without a subcommand
// starts the interactive catalog.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{})
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "countrycat",
		Short: "Browse the world's countries in the terminal",
		Long: `countrycat fetches the country list once and lets you search it by name,
sort it by name and page through it. Press enter on a row to see every field.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), e)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&e.cfgFile, "config", "", "config file (default: ./"+config.DefaultConfigFile+")")
	config.RegisterFlags(rootCmd.PersistentFlags())

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "pretty"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newListCmd(e))
	rootCmd.AddCommand(newShowCmd(e))
	return rootCmd
}

// setup loads config and builds the logger, tracer and data source.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	e.cfg = cfg

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	e.log = log
	if cfg.FileUsed != "" {
		log.Debug("using config file", "path", cfg.FileUsed)
	}

	tp, err := trace.Setup(cmd.Context())
	if err != nil {
		// Tracing is optional; keep going without it.
		log.Warn("trace setup failed", "err", err)
	}
	e.tracer = tp

	if e.source == nil {
		e.source = source.NewHTTPSource(cfg.Endpoint, log.Logger)
	}
	return nil
}

func runTUI(ctx context.Context, e *env) error {
	model := ui.NewAppModel(ctx, e.source, e.log.Logger).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// Interrupted by a signal: exit quietly.
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}

// Execute runs the root command and releases logging and tracing resources.
func Execute(ctx context.Context) error {
	e := &env{}
	defer e.close()
	rootCmd := newRootCmd(e)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
