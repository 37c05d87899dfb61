package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Xausdorf/pollbooth/internal/config"
	"github.com/Xausdorf/pollbooth/internal/gateway/bot"
	"github.com/Xausdorf/pollbooth/internal/logger"
	"github.com/Xausdorf/pollbooth/internal/repository/ttadapter"
	"github.com/tarantool/go-tarantool/v2"
	_ "github.com/tarantool/go-tarantool/v2/datetime"
	_ "github.com/tarantool/go-tarantool/v2/decimal"
	_ "github.com/tarantool/go-tarantool/v2/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := connectTarantool(ctx, cfg.Tarantool)
	if err != nil {
		log.Error("connection to tarantool refused", "address", cfg.Tarantool.Address, "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	log.Info("successfully connected to tarantool", "address", cfg.Tarantool.Address)

	pollService := ttadapter.NewPollService(conn)
	handler := bot.NewHandler(pollService, log, cfg.CallTimeout)

	pollingBot, err := bot.NewPollingBot(cfg.Mattermost, handler, log)
	if err != nil {
		log.Error("cannot start polling bot", "error", err)
		os.Exit(1)
	}
	defer pollingBot.Close()

	if err = pollingBot.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("polling bot stopped", "error", err)
		return
	}
	log.Info("shutting down")
}

func connectTarantool(ctx context.Context, cfg config.TarantoolConfig) (*tarantool.Connection, error) {
	dialer := tarantool.NetDialer{
		Address:  cfg.Address,
		User:     cfg.User,
		Password: cfg.Password,
	}
	opts := tarantool.Opts{
		Timeout:       cfg.Timeout,
		Reconnect:     cfg.Reconnect,
		MaxReconnects: cfg.MaxReconnects,
	}

	return tarantool.Connect(ctx, dialer, opts)
}
