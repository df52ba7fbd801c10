package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo holds a connected client and the application database.
// It is constructed once at startup and injected into repositories.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(dialCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Database returns the application database handle.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Collection is a shorthand for m.Database().Collection(name).
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Client exposes the raw client, mainly for the log sink.
func (m *Mongo) Client() *mongo.Client {
	return m.client
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
