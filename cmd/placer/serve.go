package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"placer/internal/config"
	"placer/internal/server"
	"placer/internal/store"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	dbPath    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored projects over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/placer.db", "path to the project database")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	log := slog.Default()
	srv := server.New(st, server.WithLogger(log), server.WithConfig(cfg))

	if w, err := config.NewWatcher(configPath, 200*time.Millisecond, log); err != nil {
		slog.Warn("config hot reload disabled", "err", err)
	} else {
		defer w.Close()
		w.Start(srv.SetConfig)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(serveAddr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
