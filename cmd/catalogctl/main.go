package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/internal/cli"
	"github.com/angelmondragon/catalog-admin/pkg/config"
	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	boot := func(ctx context.Context) (*app.Application, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		logg := logger.New(logger.Options{
			ServiceName: "catalogctl",
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			WarnStack:   cfg.App.LogWarnStack,
			Format:      cfg.App.LogFormat,
			Output:      os.Stderr,
		})
		return app.New(ctx, cfg, logg)
	}

	if err := cli.Execute(ctx, boot); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}

// describe appends field details to validation failures.
func describe(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Details() == nil {
		return err.Error()
	}
	return fmt.Sprintf("%s %v", err.Error(), typed.Details())
}
