package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB connection instance
var (
	MongoClient *mongo.Client
	database    string
)

// ConnectMongoDB initializes the database connection and ensures the unique
// email index on usuarios.
func ConnectMongoDB(uri, dbName string) *mongo.Database {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}

	Use(client, dbName)

	_, err = client.Database(dbName).Collection("usuarios").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Warning: failed to ensure unique email index: %v", err)
	}

	fmt.Println("✅ Connected to MongoDB")
	return client.Database(dbName)
}

// Use points the package at an already-connected client. Tests install a
// mock client through it.
func Use(client *mongo.Client, dbName string) {
	MongoClient = client
	database = dbName
}

// GetCollection returns a collection of the connected database.
func GetCollection(collectionName string) *mongo.Collection {
	return MongoClient.Database(database).Collection(collectionName)
}
