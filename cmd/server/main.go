package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juniorlingo/english-agent/internal/api"
	"github.com/juniorlingo/english-agent/internal/audio"
	"github.com/juniorlingo/english-agent/internal/config"
	"github.com/juniorlingo/english-agent/internal/core"
	"github.com/juniorlingo/english-agent/internal/reminder"
	"github.com/juniorlingo/english-agent/internal/speech"
	"github.com/juniorlingo/english-agent/internal/store"
)

func main() {
	envFile := flag.String("env", "", "Path to an env file to load before the environment (default .env)")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	slog.Debug("service starting in debug mode")

	ctx := context.Background()

	dbStore, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	primary, err := core.NewPrimaryGenerator(ctx, cfg.Reply)
	if err != nil {
		slog.Warn("primary reply generator unavailable, replies will use the fallback", "provider", cfg.Reply.Provider, "error", err)
	} else {
		slog.Info("primary reply generator ready", "provider", cfg.Reply.Provider)
		if closer, ok := primary.(io.Closer); ok {
			defer closer.Close()
		}
	}

	audioStore, audioDir, err := audio.NewStore(ctx, cfg.Audio)
	if err != nil {
		log.Fatalf("Failed to initialize audio store: %v", err)
	}

	chatService := core.NewChatService(dbStore, primary)
	lessonService := core.NewLessonService(dbStore, speech.NewGoogleTTS(cfg.Audio.TTSBaseURL), audioStore, cfg.Audio.TTSLanguage)
	reminderService := core.NewReminderService(dbStore)

	scheduler := reminder.NewScheduler(slog.Default())
	defer scheduler.Stop()

	if cfg.Reminder.Enabled {
		var sender reminder.MessageSender = chatService
		if cfg.Reminder.Transport == config.TransportHTTP {
			sender = reminder.NewHTTPSender(cfg.Reminder.APIBase)
		}

		publisher := reminder.NewPublisher(scheduler, sender, cfg.Reminder.DefaultUser)
		if err := publisher.Start(cfg.Reminder.Hour, cfg.Reminder.Minute); err != nil {
			slog.Error("daily reminder not started", "error", err)
		}
	}

	apiHandler := api.NewAPIHandler(chatService, lessonService, reminderService)
	router := api.NewRouter(apiHandler, api.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		AudioDir:       audioDir,
		RequestTimeout: 60 * time.Second,
	})

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", serverAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not listen on %s: %v", serverAddr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting gracefully")
}
