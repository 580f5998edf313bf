package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planter-care/internal/adapters/auth/httpauth"
	"planter-care/internal/adapters/notify/webhook"
	"planter-care/internal/platform/config"
	"planter-care/internal/platform/logger"
	"planter-care/internal/ports/auth"
	"planter-care/internal/ports/notify"
	"planter-care/internal/router"
)

// @title Planter Care API
// @version 1.0
// @description Registro de plantas, historial de cuidados y motor de recordatorios.
// @BasePath /
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "ruta al YAML de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "planter-care",
	})

	deps, err := router.NewDeps(cfg)
	if err != nil {
		log.Error("store init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer deps.Close()

	// Sin AUTH_BASE_URL el middleware queda en modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if cfg.Auth.BaseURL != "" {
		client, err := httpauth.NewClient(httpauth.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
		})
		if err != nil {
			log.Error("auth client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = httpauth.NewVerifier(client)
	}

	r := router.NewRouter(deps, router.Options{
		AuthVerifier: verifier,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if interval := cfg.Scheduler.DispatchInterval(); interval > 0 && cfg.Notify.WebhookURL != "" {
		dispatcher := webhook.NewDispatcher(webhook.Config{
			URL:    cfg.Notify.WebhookURL,
			APIKey: cfg.Notify.APIKey,
		})
		go runDispatchLoop(ctx, deps, dispatcher, interval, cfg, log)
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr, "store": cfg.Store.Engine})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
}

// runDispatchLoop recorre periódicamente a los dueños y entrega por webhook
// los recordatorios due/overdue. No deduplica entre corridas: el receptor
// debe tolerar reenvíos.
func runDispatchLoop(
	ctx context.Context,
	deps *router.Deps,
	dispatcher notify.Dispatcher,
	interval time.Duration,
	cfg config.Config,
	log logger.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	loc := cfg.Scheduler.Location()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		owners, err := deps.Plants.ListOwners(ctx)
		if err != nil {
			log.Warn("dispatch: list owners failed", map[string]any{"error": err.Error()})
			continue
		}

		now := time.Now()
		batch := []notify.Reminder{}

		for _, owner := range owners {
			states, err := deps.Care.Reminders(ctx, owner, now, loc)
			if err != nil {
				log.Warn("dispatch: reminders failed", map[string]any{"owner": owner, "error": err.Error()})
				continue
			}

			items, err := deps.Plants.ListByOwner(ctx, owner)
			if err != nil {
				log.Warn("dispatch: list plants failed", map[string]any{"owner": owner, "error": err.Error()})
				continue
			}
			nicknames := map[string]string{}
			for _, p := range items {
				nicknames[p.ID] = p.Nickname
			}

			for _, st := range states {
				if st.Status == "upcoming" {
					continue
				}
				batch = append(batch, notify.Reminder{
					UserID:      owner,
					PlantID:     st.PlantID,
					Nickname:    nicknames[st.PlantID],
					Activity:    string(st.Activity),
					DueAt:       st.DueAt,
					Status:      string(st.Status),
					DaysOverdue: st.DaysOverdue,
				})
			}
		}

		if len(batch) == 0 {
			continue
		}
		if err := dispatcher.Dispatch(ctx, batch); err != nil {
			log.Warn("dispatch: webhook failed", map[string]any{"count": len(batch), "error": err.Error()})
			continue
		}
		log.Info("dispatch: reminders sent", map[string]any{"count": len(batch)})
	}
}
