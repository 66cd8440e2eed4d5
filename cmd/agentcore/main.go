// agentcore serves the agent registry over HTTP and WebSocket.
//
// Provider credentials are read from OPENAI_API_KEY and ANTHROPIC_API_KEY.
// Without either, every model call is answered by the offline simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/chethanchannaveer/agentcore"
	"github.com/chethanchannaveer/agentcore/api"
	"github.com/chethanchannaveer/agentcore/config"
	"github.com/chethanchannaveer/agentcore/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath, addr, logLevel, logFormat string

	flagSet := pflag.NewFlagSet("agentcore", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flagSet.StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	flagSet.StringVar(&logFormat, "log-format", "", "text or json (overrides log.format)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    os.Stderr,
		Component: "agentcore",
	})

	c, err := agentcore.NewFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	status := c.ProviderStatus()
	logger.Info("Model access layer ready", "provider", string(status.Provider), "real_llm", status.HasRealLLM)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(cfg.Server.Address, c, func(o *api.Options) {
		o.Logger = logger.WithComponent("api")
	})
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Shut down")
	return nil
}
