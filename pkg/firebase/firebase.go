package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app
type App struct {
	FirebaseApp *firebase.App
	Bucket      string
}

// InitFirebase initializes the Firebase application bound to a default
// storage bucket.
func InitFirebase(ctx context.Context, credentialsPath, bucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	logrus.WithField("bucket", bucket).Info("Firebase app initialized successfully!")
	return &App{FirebaseApp: firebaseApp, Bucket: bucket}, nil
}
