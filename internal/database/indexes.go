package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	usernameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating username_unique index")
	if _, err := indexes.CreateOne(ctx, usernameIndex); err != nil {
		log.Println("EnsureUserIndexes: username index error:", err)
		return err
	}
	return nil
}

func EnsureCampgroundIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("campgrounds").Indexes()

	slugIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().
			SetName("slug_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"slug": bson.M{"$exists": true},
			}),
	}
	authorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author_lookup"),
	}

	log.Println("EnsureCampgroundIndexes: creating slug_unique and author_lookup indexes")
	if _, err := indexes.CreateMany(ctx, []mongo.IndexModel{slugIndex, authorIndex}); err != nil {
		log.Println("EnsureCampgroundIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureReviewIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("reviews").Indexes()

	campgroundIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "campground_id", Value: 1}},
		Options: options.Index().SetName("campground_lookup"),
	}

	log.Println("EnsureReviewIndexes: creating campground_lookup index")
	if _, err := indexes.CreateOne(ctx, campgroundIndex); err != nil {
		log.Println("EnsureReviewIndexes: campground index error:", err)
		return err
	}
	return nil
}
