package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens and pings a MongoDB connection.
func Connect(uri string) (*mongo.Client, error) {
	log.Println("starting MongoDB connection..")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("MongoDB connection successful")
	return client, nil
}

// ConnectRedis opens a Redis connection from a redis:// URL.
func ConnectRedis(url string) (*redis.Client, error) {
	log.Println("starting redis connection..")

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Println("redis connection successful..")
	return client, nil
}

// Collections holds every collection handle the application uses. It is
// constructed once at startup and injected; nothing reads collections from
// package state.
type Collections struct {
	Campgrounds *mongo.Collection
	Reviews     *mongo.Collection
	Users       *mongo.Collection
}

func NewCollections(db *mongo.Database) Collections {
	return Collections{
		Campgrounds: db.Collection("campgrounds"),
		Reviews:     db.Collection("reviews"),
		Users:       db.Collection("users"),
	}
}
