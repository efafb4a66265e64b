package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is one uploaded picture; PublicID references the Cloudinary asset
// so it can be destroyed when the image is removed.
type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"publicId"`
}

// Geometry is a GeoJSON point derived from the campground location at
// creation time.
type Geometry struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type DateMeta struct {
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	ModifiedAt time.Time `bson:"modified_at" json:"modifiedAt"`
}

// Campground is the top-level listing document. Reviews holds the ids of
// every review document belonging to this campground; the consistency
// rules around that array live in the services package.
type Campground struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Slug        string               `bson:"slug" json:"slug"`
	Price       float64              `bson:"price" json:"price"`
	Description string               `bson:"description" json:"description"`
	Location    string               `bson:"location" json:"location"`
	Images      []Image              `bson:"images" json:"images"`
	Geometry    Geometry             `bson:"geometry" json:"geometry"`
	Author      primitive.ObjectID   `bson:"author" json:"author"`
	Reviews     []primitive.ObjectID `bson:"reviews" json:"reviews"`
	Date        DateMeta             `bson:"date" json:"date"`
}

// CampgroundDetail is the aggregation read model: the campground joined
// with its review documents and the owning user's public profile.
type CampgroundDetail struct {
	Campground   `bson:",inline"`
	ReviewDocs   []Review   `bson:"review_docs" json:"reviewDocs"`
	AuthorDetail PublicUser `bson:"author_detail" json:"authorDetail"`
}
