package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-room/api"
	"chat-room/auth"
	"chat-room/internal"
	"chat-room/moderation"
	"chat-room/repositories"
	"chat-room/runtime"
	"chat-room/services"
	"chat-room/sink"
	"chat-room/store"
)

// Exit codes to provide meaningful status to the operating system or a
// service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// main stays a thin wrapper so every defer in run executes before
	// the process exits.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage: badger for credentials, bluge for the history index,
	// one JSON snapshot document for the chat state itself.
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	snapshots := store.NewFileSnapshotStore(config.SnapshotFilepath)
	messageStore := store.NewMessageStore(snapshots, logger)

	// 3. Core wiring: registry, dispatcher, permanent sinks
	registry := runtime.NewRegistry(logger)
	dispatcher := runtime.NewDispatcher(logger, messageStore, registry)

	index := repositories.NewSearchIndex(blugeWriter)
	dispatcher.Add(sink.NewIndexSink(index, logger))

	if config.CensoredFilepath != "" {
		moderator, err := buildModerator(config)
		if err != nil {
			return exitConfig, err
		}
		dispatcher.WithModerator(moderator)
		logger.Info("Moderation enabled", "filepath", config.CensoredFilepath)
	}

	// 4. Session gate & services
	tokens := auth.NewTokenIssuer(config.SessionSecret, config.SessionTTL)
	users := repositories.NewUserRepository(db)
	authService := services.NewAuthService(users, tokens)
	chatService := services.NewChatService(dispatcher, messageStore, registry, index)

	handler := api.NewHandler(logger, chatService, authService, tokens,
		config.ConnectionBufferSize, config.HeartbeatInterval, config.SessionTTL)

	// 5. HTTP server lifecycle
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: addr, Handler: handler.Router()}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return exitRuntime, err
	case sig := <-stop:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	// Graceful shutdown closes every open stream; the deferred handler
	// cleanups unregister their subscribers on the way out.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("shutdown failed: %w", err)
	}
	return exitOK, nil
}

func buildModerator(config internal.Config) (*moderation.Moderator, error) {
	mask, err := config.MaskRune()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(config.CensoredFilepath)
	if err != nil {
		return nil, fmt.Errorf("censored list: %w", err)
	}
	defer func() { _ = file.Close() }()

	words, err := moderation.LoadWords(file)
	if err != nil {
		return nil, fmt.Errorf("censored list: %w", err)
	}
	return moderation.NewModerator(words, mask)
}
