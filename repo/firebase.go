package repo

import (
	"context"
	"fmt"

	"LeadBot/model"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

const leadsPath = "leads"

// FirebaseConnector keeps the lead log in a Firebase Realtime Database.
type FirebaseConnector struct {
	app    *firebase.App
	client *db.Client
}

// NewFirebaseConnector creates a new Firebase connector
func NewFirebaseConnector(ctx context.Context, serviceAccountKeyPath string, databaseURL string) (*FirebaseConnector, error) {
	opt := option.WithCredentialsFile(serviceAccountKeyPath)

	config := &firebase.Config{
		DatabaseURL: databaseURL,
	}
	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}

	return &FirebaseConnector{
		app:    app,
		client: client,
	}, nil
}

// AppendRow pushes the row under /leads with a generated key.
func (fc *FirebaseConnector) AppendRow(ctx context.Context, row model.SheetRow) error {
	if _, err := fc.client.NewRef(leadsPath).Push(ctx, row); err != nil {
		return fmt.Errorf("error appending lead row: %w", err)
	}
	return nil
}
