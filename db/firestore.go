package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// client is a singleton Firestore client instance.
var (
	client     *firestore.Client
	clientOnce sync.Once
	clientErr  error
)

// InitFirestore initializes and returns the Firestore client. encodedCreds
// is a base64 service account JSON; when empty, credentialsFile is used.
func InitFirestore(ctx context.Context, encodedCreds, credentialsFile string) (*firestore.Client, error) {
	clientOnce.Do(func() {
		var opt option.ClientOption
		if encodedCreds != "" {
			creds, err := base64.StdEncoding.DecodeString(encodedCreds)
			if err != nil {
				clientErr = fmt.Errorf("decode firestore credentials: %w", err)
				return
			}
			opt = option.WithCredentialsJSON(creds)
		} else {
			opt = option.WithCredentialsFile(credentialsFile)
		}

		app, err := firebase.NewApp(ctx, nil, opt)
		if err != nil {
			clientErr = fmt.Errorf("initialize firebase app: %w", err)
			return
		}

		client, err = app.Firestore(ctx)
		if err != nil {
			clientErr = fmt.Errorf("get firestore client: %w", err)
			return
		}
		log.Println("[DB] Firestore connected")
	})

	return client, clientErr
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
