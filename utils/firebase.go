package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	firebaseApp *firebase.App
	fcmClient   *messaging.Client
	fcmOnce     sync.Once
	fcmInitErr  error
)

// InitFirebase initializes the Firebase Admin SDK and the FCM client.
// Missing credentials disable push notifications instead of failing boot.
func InitFirebase() error {
	fcmOnce.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FCM_PROJECT_ID")

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			fcmInitErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		if projectID == "" {
			fcmInitErr = fmt.Errorf("FCM_PROJECT_ID is required for FCM")
			return
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID},
			option.WithCredentialsFile(credentialsPath))
		if err != nil {
			fcmInitErr = fmt.Errorf("firebase app initialization failed: %w", err)
			return
		}
		firebaseApp = app

		client, err := app.Messaging(ctx)
		if err != nil {
			fcmInitErr = fmt.Errorf("FCM client initialization failed: %w", err)
			return
		}

		fcmClient = client
		log.Println("✅ FCM client initialized for project:", projectID)
	})

	return fcmInitErr
}

// GetFCMClient returns the FCM client, nil when push is disabled
func GetFCMClient() *messaging.Client {
	return fcmClient
}

// IsFCMEnabled checks if FCM is available
func IsFCMEnabled() bool {
	return fcmClient != nil
}

// GetInitError returns the initialization error if any
func GetInitError() error {
	return fcmInitErr
}
