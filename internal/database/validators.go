package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var campgroundSchema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"title", "price", "description", "location", "author", "reviews"},
		"properties": bson.M{
			"title":       bson.M{"bsonType": "string", "minLength": 1},
			"price":       bson.M{"bsonType": []string{"double", "int", "long", "decimal"}, "minimum": 0, "exclusiveMinimum": true},
			"description": bson.M{"bsonType": "string", "minLength": 1},
			"location":    bson.M{"bsonType": "string", "minLength": 1},
			"author":      bson.M{"bsonType": "objectId"},
			"reviews": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "objectId"},
			},
			"images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"url", "public_id"},
					"properties": bson.M{
						"url":       bson.M{"bsonType": "string"},
						"public_id": bson.M{"bsonType": "string", "minLength": 1},
					},
				},
			},
			"geometry": bson.M{
				"bsonType": "object",
				"required": []string{"type", "coordinates"},
				"properties": bson.M{
					"type": bson.M{"enum": []string{"Point"}},
					"coordinates": bson.M{
						"bsonType": "array",
						"minItems": 2,
						"maxItems": 2,
						"items":    bson.M{"bsonType": []string{"double", "int", "long", "decimal"}},
					},
				},
			},
		},
	},
}

var reviewSchema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"body", "rating", "campground_id"},
		"properties": bson.M{
			"body":          bson.M{"bsonType": "string", "minLength": 1},
			"rating":        bson.M{"bsonType": []string{"double", "int", "long", "decimal"}, "minimum": 1, "maximum": 5},
			"campground_id": bson.M{"bsonType": "objectId"},
		},
	},
}

var userSchema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"username", "password"},
		"properties": bson.M{
			"username": bson.M{"bsonType": "string", "minLength": 1},
			"password": bson.M{"bsonType": "string", "minLength": 1},
			"email":    bson.M{"bsonType": "string"},
		},
	},
}

// EnsureValidators installs the collection JSON-schema validators so the
// field shapes hold even for writes that bypass this service.
func EnsureValidators(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	schemas := map[string]bson.M{
		"campgrounds": campgroundSchema,
		"reviews":     reviewSchema,
		"users":       userSchema,
	}

	for name, schema := range schemas {
		cmd := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: schema},
			{Key: "validationLevel", Value: "moderate"},
		}
		if err := db.RunCommand(ctx, cmd).Err(); err != nil {
			// collMod fails with NamespaceNotFound on first boot; create
			// the collection with the validator instead.
			createOpts := options.CreateCollection().SetValidator(schema)
			if createErr := db.CreateCollection(ctx, name, createOpts); createErr != nil {
				log.Printf("EnsureValidators: %s validator error: %v (collMod: %v)", name, createErr, err)
				return createErr
			}
		}
	}
	return nil
}
