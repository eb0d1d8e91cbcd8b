package remote

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/Nyagar-Abraham/Finance-app/config"
)

// NewApp initializes the Firebase Admin SDK. Credentials are taken, in
// order, from inline JSON, base64 encoded JSON, a credentials file, and
// finally application default credentials.
func NewApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	log.Println("Starting Firebase initialization...")

	var opts []option.ClientOption
	switch {
	case cfg.FirebaseCredentialsJSON != "":
		log.Println("Using JSON Firebase credentials from environment")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
	case cfg.FirebaseCredentialsBase64 != "":
		log.Println("Using base64-encoded Firebase credentials from environment")
		credBytes, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decode base64 Firebase credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(credBytes))
	case cfg.FirebaseCredentialsFile != "":
		log.Printf("Using Firebase credentials file %s", cfg.FirebaseCredentialsFile)
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	default:
		log.Println("No specific Firebase credentials found, using application default credentials")
	}

	fbConfig := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.FirebaseStorageBucket,
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase app: %w", err)
	}

	log.Println("Firebase Admin SDK initialized successfully")
	return app, nil
}
