package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"plate_sales/internal/config"
	"plate_sales/internal/menu"
	"plate_sales/internal/shop"
)

const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading config: %v", err))
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(fmt.Errorf("error building logger: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// The menu blocks on stdin, so an interrupt exits from here.
	stopExit := context.AfterFunc(ctx, func() {
		_ = logger.Sync()
		os.Exit(exitInterrupted)
	})

	code := run(ctx, logger, cfg.Menu.Currency, os.Stdin, os.Stdout)

	// Unregister the exit hook before stop cancels ctx.
	stopExit()
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// run drives one menu session and returns the process exit code.
func run(ctx context.Context, logger *zap.Logger, currency string, in io.Reader, out io.Writer) int {
	m := menu.New(shop.NewInMemory(logger), in, out, logger.Named("menu"), menu.WithCurrency(currency))
	if err := m.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return exitInterrupted
		}
		logger.Error("menu stopped", zap.Error(err))
		return exitError
	}
	return exitOK
}
