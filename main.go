package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"machikoro/internal/archive"
	"machikoro/internal/server"
)

//go:embed web/static
var static embed.FS

type options struct {
	port       int
	redisAddr  string
	historyTTL time.Duration
}

func main() {
	var o options
	flag.IntVar(&o.port, "port", 8080, "server port")
	flag.StringVar(&o.redisAddr, "redis", "", "redis address for table history (empty keeps it in memory)")
	flag.DurationVar(&o.historyTTL, "history-ttl", 24*time.Hour, "how long table history is kept in redis")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	err = run(o, logger)
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(o options, logger *zap.Logger) error {
	sub, err := fs.Sub(static, "web/static")
	if err != nil {
		return fmt.Errorf("static fs: %w", err)
	}

	opts := []server.Option{server.WithLogger(logger)}
	if o.redisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		store, err := archive.NewRedisStore(ctx, o.redisAddr, o.historyTTL)
		cancel()
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("archiving table history in redis", zap.String("addr", o.redisAddr), zap.Duration("ttl", o.historyTTL))
		opts = append(opts, server.WithArchive(store))
	}

	return server.New(o.port, sub, opts...).Start()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
