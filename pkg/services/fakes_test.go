package services

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/repository"
	"campwild-api-io/api/pkg/sanitize"
	"campwild-api-io/api/pkg/util"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	validate := validator.New()
	if err := sanitize.New().RegisterNoHTML(validate); err != nil {
		t.Fatalf("failed to register nohtml: %v", err)
	}
	return validate
}

func testPaginationArgs() util.PaginationArgs {
	return util.PaginationArgs{Limit: 20}
}

type fakeStore struct{}

func (fakeStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCampgroundRepo is an in-memory CampgroundRepository that reports the
// same matched/modified/deleted counts the MongoDB implementation would.
type fakeCampgroundRepo struct {
	docs map[primitive.ObjectID]*models.Campground

	insertErr error
	// when set, PushReview and PullReview report this modified count
	// instead of the real one
	forcePushModified *int64
	forcePullModified *int64
}

func newFakeCampgroundRepo() *fakeCampgroundRepo {
	return &fakeCampgroundRepo{docs: map[primitive.ObjectID]*models.Campground{}}
}

func (f *fakeCampgroundRepo) Insert(_ context.Context, campground *models.Campground) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *campground
	f.docs[campground.ID] = &copied
	return nil
}

func (f *fakeCampgroundRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Campground, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeCampgroundRepo) FindDetailByID(_ context.Context, id primitive.ObjectID) (*models.CampgroundDetail, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.CampgroundDetail{Campground: *doc}, nil
}

func (f *fakeCampgroundRepo) FindDetailBySlug(_ context.Context, slug string) (*models.CampgroundDetail, error) {
	for _, doc := range f.docs {
		if doc.Slug == slug {
			return &models.CampgroundDetail{Campground: *doc}, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCampgroundRepo) List(_ context.Context, _ util.PaginationArgs) ([]models.Campground, int64, error) {
	out := make([]models.Campground, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCampgroundRepo) UpdateFields(_ context.Context, id primitive.ObjectID, update repository.CampgroundFieldsUpdate) (int64, error) {
	doc, ok := f.docs[id]
	if !ok {
		return 0, nil
	}
	doc.Title = update.Title
	doc.Slug = update.Slug
	doc.Price = update.Price
	doc.Description = update.Description
	doc.Location = update.Location
	if update.Geometry != nil {
		doc.Geometry = *update.Geometry
	}
	return 1, nil
}

func (f *fakeCampgroundRepo) PullImages(_ context.Context, id primitive.ObjectID, publicIDs []string) (int64, error) {
	doc, ok := f.docs[id]
	if !ok {
		return 0, nil
	}
	drop := map[string]bool{}
	for _, publicID := range publicIDs {
		drop[publicID] = true
	}
	kept := doc.Images[:0]
	for _, img := range doc.Images {
		if !drop[img.PublicID] {
			kept = append(kept, img)
		}
	}
	doc.Images = kept
	return 1, nil
}

func (f *fakeCampgroundRepo) PushImages(_ context.Context, id primitive.ObjectID, images []models.Image) (int64, error) {
	doc, ok := f.docs[id]
	if !ok {
		return 0, nil
	}
	doc.Images = append(doc.Images, images...)
	return 1, nil
}

func (f *fakeCampgroundRepo) PushReview(_ context.Context, id, reviewID primitive.ObjectID) (int64, int64, error) {
	doc, ok := f.docs[id]
	if !ok {
		return 0, 0, nil
	}
	doc.Reviews = append(doc.Reviews, reviewID)
	if f.forcePushModified != nil {
		return 1, *f.forcePushModified, nil
	}
	return 1, 1, nil
}

func (f *fakeCampgroundRepo) PullReview(_ context.Context, id, reviewID primitive.ObjectID) (int64, int64, error) {
	doc, ok := f.docs[id]
	if !ok {
		return 0, 0, nil
	}
	if f.forcePullModified != nil {
		return 1, *f.forcePullModified, nil
	}
	var modified int64
	kept := doc.Reviews[:0]
	for _, ref := range doc.Reviews {
		if ref == reviewID {
			modified = 1
			continue
		}
		kept = append(kept, ref)
	}
	doc.Reviews = kept
	return 1, modified, nil
}

func (f *fakeCampgroundRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := f.docs[id]; !ok {
		return 0, nil
	}
	delete(f.docs, id)
	return 1, nil
}

type fakeReviewRepo struct {
	docs map[primitive.ObjectID]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{docs: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewRepo) Insert(_ context.Context, review *models.Review) error {
	copied := *review
	f.docs[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeReviewRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := f.docs[id]; !ok {
		return 0, nil
	}
	delete(f.docs, id)
	return 1, nil
}

func (f *fakeReviewRepo) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := f.docs[id]; ok {
			delete(f.docs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReviewRepo) ListByCampground(_ context.Context, campgroundID primitive.ObjectID, _ util.PaginationArgs) ([]models.Review, int64, error) {
	out := []models.Review{}
	for _, doc := range f.docs {
		if doc.CampgroundID == campgroundID {
			out = append(out, *doc)
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	docs      map[primitive.ObjectID]*models.User
	insertErr error
	touchErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{docs: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, doc := range f.docs {
		if doc.Username == user.Username {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	copied := *user
	f.docs[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, doc := range f.docs {
		if doc.Username == username {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, doc := range f.docs {
		if doc.Email == email {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, _ primitive.ObjectID) error {
	return f.touchErr
}

type fakeGeocoder struct {
	geometry models.Geometry
	err      error
	queries  []string
}

func (f *fakeGeocoder) Forward(_ context.Context, query string) (models.Geometry, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return models.Geometry{}, f.err
	}
	return f.geometry, nil
}

type fakeUploader struct {
	uploads   int
	uploadErr error
	destroyed []string
}

func (f *fakeUploader) Upload(_ context.Context, _ interface{}) (models.Image, error) {
	if f.uploadErr != nil {
		return models.Image{}, f.uploadErr
	}
	f.uploads++
	publicID := fmt.Sprintf("upload-%d", f.uploads)
	return models.Image{URL: "https://cdn.example.com/" + publicID + ".jpg", PublicID: publicID}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

var _ io.Reader = (*fakeFile)(nil)

type fakeFile struct{}

func (fakeFile) Read(p []byte) (int, error) {
	return 0, io.EOF
}
