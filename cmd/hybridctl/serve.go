package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantafold/hybrid-core/internal/driver"
	"github.com/quantafold/hybrid-core/internal/server"
	"github.com/quantafold/hybrid-core/internal/store"
	"github.com/quantafold/hybrid-core/pkg/logger"
)

var (
	serveAddr      string
	serveStoreKind string
	serveStorePath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the component catalog and run submission API over HTTP",
	RunE:  serveAPI,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveStoreKind, "store", "memory", "Run store backend: memory or sqlite")
	serveCmd.Flags().StringVar(&serveStorePath, "store-path", "runs.db", "Path of the sqlite run store")

	rootCmd.AddCommand(serveCmd)
}

func serveAPI(cmd *cobra.Command, args []string) error {
	drv, err := driver.NewRuntime(logger.Default)
	if err != nil {
		return err
	}

	runs, err := store.NewStore(serveStoreKind, serveStorePath)
	if err != nil {
		return err
	}
	defer store.CloseIfSupported(runs)
	if err := runs.Init(cmd.Context()); err != nil {
		return err
	}

	srv := server.New(drv, runs, logger.Default)
	httpServer := &http.Server{
		Addr:         serveAddr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
	}

	logger.Info("starting API server", "addr", serveAddr, "store", serveStoreKind)
	return httpServer.ListenAndServe()
}
