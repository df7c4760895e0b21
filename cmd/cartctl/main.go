package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/joho/godotenv"
)

// CLI витрины: каталог и корзина в том же слоте, что и у сервера.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// логи уходят в stderr, вывод команд — в stdout
	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = ctxmeta.WithOrigin(ctx, ctxmeta.OriginCLI)

	code := run(ctx, &cfg, logg, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	_ = cleanup()
	os.Exit(code)
}
