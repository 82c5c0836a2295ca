package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/config"
	"github.com/letsssgooo/classroom/internal/lib/slogcustom"
	"github.com/letsssgooo/classroom/internal/storage"
	"github.com/letsssgooo/classroom/internal/storage/bolt"
	"github.com/letsssgooo/classroom/internal/storage/postgres"
	"github.com/letsssgooo/classroom/internal/storage/redis"
	"github.com/letsssgooo/classroom/internal/store"
)

func main() {
	flags := pflag.NewFlagSet("classroom", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.Usage = func() { usage(flags) }
	config.RegisterFlags(flags)

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := setupLogger(cfg.LogLevel)
	slog.SetDefault(log)

	args := flags.Args()
	if len(args) == 0 {
		usage(flags)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, log, args[0], args[1:])
	if code := exitCode(err); code != 0 {
		log.Error("command failed", "command", args[0], "error", err)
		stop()
		os.Exit(code)
	}
}

// exitCode — код завершения процесса для ошибки команды.
// Запрос справки через -h не считается ошибкой.
func exitCode(err error) int {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return 0
	}

	return 1
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	tokens, err := openTokenStore(ctx, cfg.Token)
	if err != nil {
		return err
	}
	defer func() {
		if err := tokens.Close(); err != nil {
			log.Warn("failed to close token storage", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()

	gw, err := client.New(
		client.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout},
		client.WithLogger(log),
		client.WithMetrics(client.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	st, err := store.New(ctx, gw, tokens, log)
	if err != nil {
		return err
	}

	err = cmd.run(ctx, st, args)
	dumpMetrics(log, reg)

	return err
}

// openTokenStore открывает хранилище токена, выбранное в конфиге.
func openTokenStore(ctx context.Context, cfg config.TokenConfig) (storage.TokenStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStorage(), nil
	case config.DriverRedis:
		s, err := redis.NewStorage(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.NewStorage(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func dumpMetrics(log *slog.Logger, reg *prometheus.Registry) {
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	families, err := reg.Gather()
	if err != nil {
		log.Warn("failed to gather metrics", "error", err)
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"name", mf.GetName()}
			for _, label := range m.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			if c := m.GetCounter(); c != nil {
				attrs = append(attrs, "value", c.GetValue())
			}
			if h := m.GetHistogram(); h != nil {
				attrs = append(attrs, "count", h.GetSampleCount(), "sum", h.GetSampleSum())
			}
			log.Debug("metric", attrs...)
		}
	}
}

func setupLogger(level slog.Level) *slog.Logger {
	return slog.New(slogcustom.NewCustomHandler(os.Stderr, level))
}

func usage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "usage: classroom [flags] <command> [args]\n\ncommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-18s %s\n", name, commands[name].help)
	}
	fmt.Fprintf(os.Stderr, "\nflags:\n%s", flags.FlagUsages())
}
