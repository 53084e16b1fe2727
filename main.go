package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/app"
	"catalog/internal/config"
	"catalog/internal/database"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the product catalog REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(envFile)
		},
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products table and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(envFile)
		},
	}

	root := &cobra.Command{
		Use:          "catalog",
		Short:        "Product catalog service",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional env file")
	root.AddCommand(serve, migrate)
	return root
}

func runServer(envFile string) error {
	cfg, err := config.Load(config.New(), envFile)
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Printf("Failed to initialize app: %v", err)
		return err
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.Listen()
	}()

	select {
	case err := <-serveErr:
		log.Printf("Server stopped: %v", err)
		_ = a.Shutdown(context.Background())
		return err
	case <-quit:
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
		return err
	}
	log.Println("Server gracefully stopped")
	return nil
}

func runMigrate(envFile string) error {
	cfg, err := config.Load(config.New(), envFile)
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return err
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}
	log.Println("Migration applied")
	return nil
}
