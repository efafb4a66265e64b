package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review belongs to exactly one campground. CampgroundID mirrors the id in
// the campground's reviews array so review queries and the collection
// validator do not need a join.
type Review struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	CampgroundID primitive.ObjectID `bson:"campground_id" json:"campgroundId"`
	Body         string             `bson:"body" json:"body"`
	Rating       float64            `bson:"rating" json:"rating"`
	AuthorID     primitive.ObjectID `bson:"author_id" json:"authorId"`
	AuthorName   string             `bson:"author_name" json:"authorName"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
