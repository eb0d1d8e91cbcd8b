package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/Nyagar-Abraham/Finance-app/api"
	"github.com/Nyagar-Abraham/Finance-app/config"
	"github.com/Nyagar-Abraham/Finance-app/database"
	"github.com/Nyagar-Abraham/Finance-app/handlers"
	"github.com/Nyagar-Abraham/Finance-app/middleware"
	"github.com/Nyagar-Abraham/Finance-app/notify"
	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/repository"
	"github.com/Nyagar-Abraham/Finance-app/services"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsDevelopment() {
		log.Println("Running in development environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var (
		app      *firebase.App
		mirror   remote.Store
		blobs    remote.BlobStore
		notifier notify.Notifier = notify.LogNotifier{}
		verifier middleware.TokenVerifier
		profiles handlers.ProfileSource
	)

	if cfg.RemoteMode == config.RemoteFirestore || cfg.HasFirebaseCredentials() {
		app, err = remote.NewApp(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	}

	switch cfg.RemoteMode {
	case config.RemoteFirestore:
		fs, err := remote.NewFirestoreStore(ctx, app, cfg.RemoteTimeout)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer fs.Close()
		mirror = fs

		if cfg.FirebaseStorageBucket != "" {
			if blobs, err = remote.NewStorageBlobStore(ctx, app); err != nil {
				log.Fatalf("Failed to connect to Cloud Storage: %v", err)
			}
		}
	case config.RemoteMemory:
		log.Println("Remote mirror kept in memory")
		mirror = remote.NewMemoryStore()
		blobs = remote.NewMemoryBlobStore()
	default:
		log.Println("Remote mirror disabled, transactions will stay FAILED until resynced")
		mirror = remote.Disabled{}
	}

	if app != nil {
		client, err := app.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		verifier = client
		profiles = client
	} else {
		log.Printf("Firebase auth disabled, all requests act as %s", cfg.DevOwnerID)
	}

	if app != nil && cfg.Notifications == "fcm" {
		fcm, err := notify.NewFCMNotifier(ctx, app)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Messaging: %v", err)
		}
		notifier = fcm
	}

	repos := repository.New(store.New(db), mirror, time.Now)
	scheduler := services.NewRecurringScheduler(repos, cfg.SchedulerInterval, cfg.SchedulerFlex, cfg.Location, time.Now)
	monitor := services.NewBudgetMonitor(repos, notifier, cfg.BudgetWarningThreshold, cfg.Location)

	if cfg.SchedulerEnabled {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	h := &handlers.Handler{
		Repos:     repos,
		Scheduler: scheduler,
		Monitor:   monitor,
		Blobs:     blobs,
		Profiles:  profiles,
		Location:  cfg.Location,
		Now:       time.Now,
	}
	server := api.NewServer(h,
		middleware.NewAuth(verifier, cfg.DevOwnerID),
		middleware.NewCORS(cfg.CORSAllowedOrigins, cfg.IsDevelopment()))

	// No write timeout: /transactions/stream holds the connection open
	srv := &http.Server{
		Handler:     server.Handler(),
		Addr:        ":" + cfg.Port,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
