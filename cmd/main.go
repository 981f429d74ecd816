package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/payroll/internal/adapters/csvfile"
	app "github.com/okian/payroll/internal/app"
	"github.com/okian/payroll/internal/config"
	"github.com/okian/payroll/internal/domain/report"
	"github.com/okian/payroll/pkg/logger"
	"github.com/okian/payroll/pkg/metrics"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// rootOptions holds the values bound to command-line flags.
type rootOptions struct {
	report      string
	configPath  string
	logLevel    string
	logFile     string
	metricsFile string

	// log is set once the configured diagnostic logger exists.
	log logger.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	cmd := newRootCmd(opts, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if opts.log == nil {
			logBootstrapFailure(ctx, stderr, err)
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// logBootstrapFailure records errors raised before the configured logger
// exists (flag parsing, config loading, log file setup) on stderr.
func logBootstrapFailure(ctx context.Context, stderr io.Writer, err error) {
	log, logErr := logger.New(stderr)
	if logErr != nil {
		return
	}
	log.Error(ctx, "command failed", logger.Error(err))
}

func newRootCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "payroll <file>... --report <name>",
		Short: "Build payroll reports from employee work-hour files",
		Long: `payroll reads one or more comma-separated files with the columns
id, email, name, department, hours_worked and hourly_rate (any order, extra
columns ignored) and prints the selected report to standard output.

Quoted fields and embedded delimiters are not supported.

Configuration is layered: defaults, then the YAML file named by --config or
$PAYROLL_CONFIG, then PAYROLL_* environment variables, then flags.`,
		Example: `  payroll employees.csv --report payout
  payroll q1.csv q2.csv --report payout --log-file payroll.log`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.report, "report", "", "report type: "+strings.Join(report.Default.Names(), ", "))
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "append diagnostic log lines to this file instead of stderr")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	_ = cmd.MarkFlagRequired("report")
	_ = cmd.RegisterFlagCompletionFunc("report", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return report.Default.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runReport(ctx context.Context, opts *rootOptions, paths []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	sink := stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		sink = f
	}

	log, err := logger.New(sink, logger.WithLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	opts.log = log

	m := metrics.Default()
	if cfg.MetricsFile != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
				log.Warn(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(err))
			}
		}()
	}

	if _, err := report.Default.Lookup(opts.report); err != nil {
		log.Error(ctx, "report lookup failed", logger.Error(err))
		return err
	}

	if err := checkFilesExist(paths); err != nil {
		log.Error(ctx, "input validation failed", logger.Error(err))
		return err
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithMetrics(m),
		app.WithRegistry(report.Default),
		app.WithReader(csvfile.NewReader(
			csvfile.WithDelimiter(cfg.DelimiterRune()),
			csvfile.WithLogger(log.Named("ingest")),
			csvfile.WithMetrics(m),
		)),
	)

	out, err := svc.Run(ctx, paths, opts.report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, out)
	return err
}

// loadConfig layers flags over the loaded configuration.
func loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(ctx, opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.metricsFile != "" {
		cfg.MetricsFile = opts.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkFilesExist fails on the first path that does not exist.
func checkFilesExist(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s", csvfile.ErrFileNotFound, path)
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return nil
}
