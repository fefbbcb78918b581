package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/invmock/invmock/pkg/config"
	"github.com/invmock/invmock/pkg/engine"
	"github.com/invmock/invmock/pkg/logging"
)

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	configPath string
	port       int
	host       string
	logLevel   string
	logFormat  string
	randomSeed int64
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock data server",
	Long: `Start the GraphQL server with a freshly seeded data set.

The server runs in the foreground until SIGTERM/SIGINT. Flags override
values from the config file.`,
	Example: `  # Start with defaults on port 4280
  invmock serve

  # Start from a config file with a flag override
  invmock serve --config invmock.yaml --port 9000

  # JSON logs for CI parsing
  invmock serve --log-format json --log-level debug`,
	RunE: runServe,
}

func init() {
	f := &serveFlagVals

	serveCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to config file (YAML)")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", 0, "HTTP server port (overrides config)")
	serveCmd.Flags().StringVar(&f.host, "host", "", "Bind address (overrides config)")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	serveCmd.Flags().Int64Var(&f.randomSeed, "random-seed", 0, "Seed for the generated data set")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	f := &serveFlagVals

	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if f.port != 0 {
		cfg.Server.Port = f.port
	}
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if f.randomSeed != 0 {
		cfg.Seed.RandomSeed = f.randomSeed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
	})

	srv := engine.NewServer(cfg, engine.WithLogger(log.With("component", "engine")))
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	fmt.Printf("invmock listening on http://%s:%d/graphql\n", hostLabel(cfg.Server.Host), cfg.Server.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func hostLabel(host string) string {
	if host == "" || host == "0.0.0.0" {
		return "localhost"
	}
	return host
}
