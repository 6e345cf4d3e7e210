package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"genelab/internal/config"
	"genelab/internal/genetics"
	"genelab/internal/logging"
	"genelab/internal/metrics"
	"genelab/internal/pool"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	metricsAddr string

	// Resolved in PersistentPreRunE
	logger    *zap.Logger
	cfg       *config.Config
	collector *metrics.Collector

	metricsServer *http.Server
)

// newRootCmd builds the command tree. Flag variables are reset to their
// defaults on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "genelab",
		Short: "genelab - genome codec and genetic operator workbench",
		Long: `genelab decodes, evaluates and breeds genomes: compact alphabet strings
holding an ordered list of typed condition/expression tree genes.

Genomes can be stored in a SQLite gene pool together with their lineage.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "genelab.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")

	rootCmd.AddCommand(newRandomCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newBreedCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setup loads configuration and starts logging and metrics.
func setup(cmd *cobra.Command, args []string) error {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Logging.Options()); err != nil {
		return fmt.Errorf("failed to initialize file logging: %w", err)
	}
	logging.Boot("config resolved: path=%s pool=%s/%s", configPath, cfg.Pool.Driver, cfg.Pool.Path)

	collector = metrics.New()
	logging.BootDebug("genetic rates: %+v", *cfg.Genetics)
	if cfg.Metrics.Addr != "" {
		if err := serveMetrics(cfg.Metrics.Addr); err != nil {
			return err
		}
	}
	return nil
}

func serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	metricsServer = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("Serving metrics", zap.String("addr", ln.Addr().String()))
	return nil
}

// teardown runs after every command, including failed ones.
func teardown() {
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = metricsServer.Shutdown(ctx)
		cancel()
		metricsServer = nil
	}
	logging.CloseAll()
	if logger != nil {
		_ = logger.Sync()
	}
}

// execute runs the CLI with args, writing command output to out.
func execute(args []string, out io.Writer) error {
	defer teardown()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func newEngine() *genetics.Engine {
	return genetics.NewEngine(cfg.Genetics).WithMetrics(collector)
}

func openPool() (*pool.Pool, error) {
	p, err := pool.Open(cfg.Pool.Driver, cfg.Pool.Path)
	if err != nil {
		return nil, err
	}
	return p.WithMetrics(collector), nil
}

func main() {
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
