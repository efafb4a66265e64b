package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/util"
)

type MongoCampgroundRepository struct {
	collection *mongo.Collection
}

func NewMongoCampgroundRepository(collection *mongo.Collection) *MongoCampgroundRepository {
	return &MongoCampgroundRepository{collection: collection}
}

func (r *MongoCampgroundRepository) Insert(ctx context.Context, campground *models.Campground) error {
	_, err := r.collection.InsertOne(ctx, campground)
	return err
}

func (r *MongoCampgroundRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campground, error) {
	var campground models.Campground
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campground)
	if err != nil {
		return nil, err
	}
	return &campground, nil
}

func (r *MongoCampgroundRepository) FindDetailByID(ctx context.Context, id primitive.ObjectID) (*models.CampgroundDetail, error) {
	return r.findDetail(ctx, bson.M{"_id": id})
}

func (r *MongoCampgroundRepository) FindDetailBySlug(ctx context.Context, slug string) (*models.CampgroundDetail, error) {
	return r.findDetail(ctx, bson.M{"slug": slug})
}

// findDetail joins the campground with its review documents and the owning
// user in a single aggregation read.
func (r *MongoCampgroundRepository) findDetail(ctx context.Context, match bson.M) (*models.CampgroundDetail, error) {
	pipeline := []bson.M{
		{"$match": match},
		{
			"$lookup": bson.M{
				"from":         "reviews",
				"localField":   "reviews",
				"foreignField": "_id",
				"as":           "review_docs",
			},
		},
		{
			"$lookup": bson.M{
				"from":         "users",
				"localField":   "author",
				"foreignField": "_id",
				"as":           "author_detail",
			},
		},
		{"$unwind": "$author_detail"},
		{
			"$addFields": bson.M{
				"author_detail": bson.M{
					"_id":      "$author_detail._id",
					"username": "$author_detail.username",
				},
			},
		},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return firstDetail(ctx, cursor)
}

// firstDetail decodes the first aggregation result. A cursor that yields
// nothing because the read failed is surfaced as that failure, not as a
// missing document.
func firstDetail(ctx context.Context, cursor *mongo.Cursor) (*models.CampgroundDetail, error) {
	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, mongo.ErrNoDocuments
	}

	var detail models.CampgroundDetail
	if err := cursor.Decode(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func campgroundSortBson(sort string) bson.D {
	value := -1
	var key string

	switch sort {
	case "created_at_asc", "created_at_desc":
		key = "date.created_at"
	case "price_asc", "price_desc":
		key = "price"
	case "title_asc", "title_desc":
		key = "title"
	default:
		return bson.D{{Key: "date.created_at", Value: -1}}
	}

	if sort == "created_at_asc" || sort == "price_asc" || sort == "title_asc" {
		value = 1
	}
	return bson.D{{Key: key, Value: value}}
}

func (r *MongoCampgroundRepository) List(ctx context.Context, args util.PaginationArgs) ([]models.Campground, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(args.Limit)).
		SetSkip(int64(args.Skip)).
		SetSort(campgroundSortBson(args.Sort))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}

	var campgrounds []models.Campground
	if err := cursor.All(ctx, &campgrounds); err != nil {
		return nil, 0, err
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	return campgrounds, count, nil
}

func (r *MongoCampgroundRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update CampgroundFieldsUpdate) (int64, error) {
	set := bson.M{
		"title":            update.Title,
		"slug":             update.Slug,
		"price":            update.Price,
		"description":      update.Description,
		"location":         update.Location,
		"date.modified_at": time.Now(),
	}
	if update.Geometry != nil {
		set["geometry"] = *update.Geometry
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *MongoCampgroundRepository) PullImages(ctx context.Context, id primitive.ObjectID, publicIDs []string) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$pull": bson.M{"images": bson.M{"public_id": bson.M{"$in": publicIDs}}}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoCampgroundRepository) PushImages(ctx context.Context, id primitive.ObjectID, images []models.Image) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"images": bson.M{"$each": images}}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoCampgroundRepository) PushReview(ctx context.Context, id, reviewID primitive.ObjectID) (int64, int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"reviews": reviewID}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *MongoCampgroundRepository) PullReview(ctx context.Context, id, reviewID primitive.ObjectID) (int64, int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$pull": bson.M{"reviews": reviewID}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *MongoCampgroundRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
