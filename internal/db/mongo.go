package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client is the shared Mongo client, set by InitMongo
var Client *mongo.Client

// Database is the member directory database handle
var Database *mongo.Database

// InitMongo connects to the member directory and verifies the connection
// with a ping before returning.
func InitMongo(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to Mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping Mongo: %w", err)
	}

	Client = client
	Database = client.Database(dbName)
	return nil
}

// Ping checks directory reachability for the health endpoint.
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the shared client.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
