// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdhender/pkr/internal/config"
	"github.com/mdhender/pkr/renderer"
	"github.com/mdhender/pkr/repository"
	store "github.com/mdhender/pkr/stores/sqlite"
	"github.com/mdhender/pkr/web/auth"
	"github.com/mdhender/pkr/web/handlers"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func cmdServe() *cobra.Command {
	var addr, notesDir, dbPath string
	var authAsOwner bool
	var timeout time.Duration
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&addr, "addr", addr, "HTTP listen address (overrides addr)")
		cmd.Flags().StringVar(&notesDir, "notes", notesDir, "notes directory (overrides notes_dir)")
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "SQLite database file path (overrides db_path; empty = in-memory)")
		cmd.Flags().BoolVar(&authAsOwner, "auth-as-owner", false, "treat every request as the owner (testing only)")
		cmd.Flags().DurationVar(&timeout, "timeout", 0, "auto-shutdown after duration (e.g., 5s, 1m)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "serve",
		Short:        "serve the notes over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("notes") {
				cfg.NotesDir = notesDir
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg, l, authAsOwner, timeout)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func serve(cfg *config.Config, logger *slog.Logger, authAsOwner bool, timeout time.Duration) error {
	var sqliteStore *store.SQLiteStore
	var err error

	if cfg.DBPath != "" {
		// database must already exist (created by init-db command)
		logger.Info("store: using file-based SQLite", "path", cfg.DBPath)
		sqliteStore, err = store.NewSQLiteStoreWithConfig(store.StoreConfig{
			Path:       cfg.DBPath,
			InitSchema: false,
		})
	} else {
		logger.Info("store: using in-memory SQLite")
		sqliteStore, err = store.NewSQLiteStore()
	}
	if err != nil {
		return fmt.Errorf("failed to create SQLite store: %w", err)
	}
	defer sqliteStore.Close()

	repo, err := repository.New(afero.NewOsFs(), cfg.NotesDir,
		repository.WithStripCR(cfg.StripCR),
		repository.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := store.LoadFromLister(ctx, sqliteStore, repo, logger); err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	if stats, err := sqliteStore.Stats(ctx); err == nil {
		logger.Info("store: loaded", "notes", stats.Notes, "public", stats.Public, "tags", stats.Tags)
	}

	r, err := renderer.New(renderer.WithSiteTitle(cfg.Title))
	if err != nil {
		return err
	}

	h := handlers.New(repo, sqliteStore, auth.NewSessionStore(), r, logger)
	h.SetOwnerHash(cfg.OwnerPasswordHash)
	if cfg.OwnerPasswordHash == "" {
		logger.Warn("auth: owner_password_hash is not set; private notes will not be served")
	}
	if authAsOwner {
		h.SetAutoAuth()
		logger.Warn("auth: auto-authenticating every request as the owner")
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	if timeout > 0 {
		go func() {
			logger.Info("server: will auto-shutdown", "after", timeout)
			time.Sleep(timeout)
			logger.Info("server: timeout reached, initiating shutdown")
			shutdown <- os.Interrupt
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", cfg.Addr, "notes", cfg.NotesDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-shutdown:
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("server: shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown error: %w", err)
	}

	logger.Info("server: stopped")
	return nil
}
