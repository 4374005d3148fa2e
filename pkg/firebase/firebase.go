package firebase

import (
	"context"
	"errors"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// SetUpFireBase initializes the Firebase app used for Cloud Messaging.
// credentialsFile points at a service-account JSON file; when empty,
// no app is created and push delivery stays disabled.
func SetUpFireBase(credentialsFile string) (*firebase.App, error) {
	if credentialsFile == "" {
		return nil, errors.New("firebase credentials file not configured")
	}

	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}

	return app, nil
}
