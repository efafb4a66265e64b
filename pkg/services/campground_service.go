package services

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/geocode"
	"campwild-api-io/api/pkg/media"
	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/repository"
	"campwild-api-io/api/pkg/util"
)

type CampgroundService interface {
	Create(ctx context.Context, author primitive.ObjectID, req models.NewCampground, files []io.Reader) (*models.Campground, error)
	GetDetail(ctx context.Context, idOrSlug string) (*models.CampgroundDetail, error)
	List(ctx context.Context, args util.PaginationArgs) ([]models.Campground, int64, error)
	Update(ctx context.Context, principal, id primitive.ObjectID, req models.UpdateCampground, files []io.Reader) (*models.Campground, error)
	Delete(ctx context.Context, principal, id primitive.ObjectID) error
}

type campgroundService struct {
	store       repository.Store
	campgrounds repository.CampgroundRepository
	reviews     repository.ReviewRepository
	geocoder    geocode.Geocoder
	uploader    media.Uploader
	validate    *validator.Validate
}

func NewCampgroundService(store repository.Store, campgrounds repository.CampgroundRepository, reviews repository.ReviewRepository, geocoder geocode.Geocoder, uploader media.Uploader, validate *validator.Validate) CampgroundService {
	return &campgroundService{
		store:       store,
		campgrounds: campgrounds,
		reviews:     reviews,
		geocoder:    geocoder,
		uploader:    uploader,
		validate:    validate,
	}
}

func campgroundSlug(title string, id primitive.ObjectID) string {
	// Short id suffix keeps slugs unique across identical titles.
	hex := id.Hex()
	return slug.Make(title) + "-" + hex[len(hex)-6:]
}

// Create validates the payload, geocodes the location, uploads images and
// inserts the document. Uploaded media is destroyed again when the insert
// fails so the object store holds no unreferenced files.
func (cs *campgroundService) Create(ctx context.Context, author primitive.ObjectID, req models.NewCampground, files []io.Reader) (*models.Campground, error) {
	if err := cs.validate.Struct(&req); err != nil {
		return nil, apperr.FromValidation(err)
	}

	geometry, err := cs.geocoder.Forward(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	images := make([]models.Image, 0, len(req.Images)+len(files))
	for _, img := range req.Images {
		images = append(images, models.Image{URL: img.URL, PublicID: img.PublicID})
	}

	uploaded, err := cs.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}
	images = append(images, uploaded...)

	now := time.Now()
	id := primitive.NewObjectID()
	campground := &models.Campground{
		ID:          id,
		Title:       req.Title,
		Slug:        campgroundSlug(req.Title, id),
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
		Images:      images,
		Geometry:    geometry,
		Author:      author,
		Reviews:     []primitive.ObjectID{},
		Date:        models.DateMeta{CreatedAt: now, ModifiedAt: now},
	}

	if err := cs.campgrounds.Insert(ctx, campground); err != nil {
		cs.destroyAll(ctx, uploaded)
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create campground")
	}

	return campground, nil
}

func (cs *campgroundService) GetDetail(ctx context.Context, idOrSlug string) (*models.CampgroundDetail, error) {
	var detail *models.CampgroundDetail
	var err error

	if primitive.IsValidObjectID(idOrSlug) {
		id, idErr := primitive.ObjectIDFromHex(idOrSlug)
		if idErr != nil {
			return nil, apperr.Wrap(apperr.Validation, idErr, "invalid campground id")
		}
		detail, err = cs.campgrounds.FindDetailByID(ctx, id)
	} else {
		detail, err = cs.campgrounds.FindDetailBySlug(ctx, idOrSlug)
	}

	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "campground not found")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to load campground")
	}

	if detail.ReviewDocs == nil {
		detail.ReviewDocs = []models.Review{}
	}
	return detail, nil
}

func (cs *campgroundService) List(ctx context.Context, args util.PaginationArgs) ([]models.Campground, int64, error) {
	campgrounds, count, err := cs.campgrounds.List(ctx, args)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, err, "failed to list campgrounds")
	}
	if campgrounds == nil {
		campgrounds = []models.Campground{}
	}
	return campgrounds, count, nil
}

// Update replaces the mutable fields of a campground the principal owns.
// Location edits re-run geocoding; image deletions fail soft so one
// unreachable object-store asset never aborts the whole edit.
func (cs *campgroundService) Update(ctx context.Context, principal, id primitive.ObjectID, req models.UpdateCampground, files []io.Reader) (*models.Campground, error) {
	if err := cs.validate.Struct(&req); err != nil {
		return nil, apperr.FromValidation(err)
	}

	existing, err := cs.campgrounds.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "campground not found")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to load campground")
	}
	if existing.Author != principal {
		return nil, apperr.New(apperr.Forbidden, "you do not have permission to do that")
	}

	var geometry *models.Geometry
	if req.Location != existing.Location {
		point, err := cs.geocoder.Forward(ctx, req.Location)
		if err != nil {
			return nil, err
		}
		geometry = &point
	}

	if ids := cs.ownedPublicIDs(existing, req.DeleteImages); len(ids) > 0 {
		for _, publicID := range ids {
			if err := cs.uploader.Destroy(ctx, publicID); err != nil {
				util.LogWarning("image %s could not be removed from object store: %v", publicID, err)
			}
		}
		if _, err := cs.campgrounds.PullImages(ctx, id, ids); err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "failed to remove images")
		}
	}

	uploaded, err := cs.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	update := repository.CampgroundFieldsUpdate{
		Title:       req.Title,
		Slug:        campgroundSlug(req.Title, id),
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
		Geometry:    geometry,
	}

	matched, err := cs.campgrounds.UpdateFields(ctx, id, update)
	if err != nil {
		cs.destroyAll(ctx, uploaded)
		return nil, apperr.Wrap(apperr.Internal, err, "failed to update campground")
	}
	if matched == 0 {
		cs.destroyAll(ctx, uploaded)
		return nil, apperr.New(apperr.NotFound, "campground not found")
	}

	if len(uploaded) > 0 {
		if _, err := cs.campgrounds.PushImages(ctx, id, uploaded); err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "failed to attach uploaded images")
		}
	}

	updated, err := cs.campgrounds.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to reload campground")
	}
	return updated, nil
}

// Delete removes a campground and every review it references. The cascade
// runs under the transaction boundary; a count mismatch between the
// reference array and the documents actually deleted is reported as a
// cascade-integrity failure, never as success.
func (cs *campgroundService) Delete(ctx context.Context, principal, id primitive.ObjectID) error {
	var images []models.Image

	err := cs.store.WithTransaction(ctx, func(ctx context.Context) error {
		campground, err := cs.campgrounds.FindByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.New(apperr.NotFound, "campground not found")
			}
			return apperr.Wrap(apperr.Internal, err, "failed to load campground")
		}
		if campground.Author != principal {
			return apperr.New(apperr.Forbidden, "you do not have permission to do that")
		}
		images = campground.Images

		reviewsDeleted, err := cs.reviews.DeleteByIDs(ctx, campground.Reviews)
		if err != nil {
			return apperr.Wrap(apperr.Internal, err, "failed to delete reviews")
		}

		deleted, err := cs.campgrounds.Delete(ctx, id)
		if err != nil {
			return apperr.Wrap(apperr.Internal, err, "failed to delete campground")
		}
		if deleted != 1 {
			return apperr.New(apperr.NotFound, "campground not found")
		}

		if int(reviewsDeleted) != len(campground.Reviews) {
			util.LogError("cascade mismatch: campground=%s expected=%d deleted=%d",
				id.Hex(), len(campground.Reviews), reviewsDeleted)
			return apperr.New(apperr.CascadeIntegrity, "campground reviews were not fully deleted")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Object-store cleanup happens outside the document transaction;
	// failures are logged, not propagated.
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := cs.uploader.Destroy(ctx, img.PublicID); err != nil {
			util.LogWarning("image %s could not be removed from object store: %v", img.PublicID, err)
		}
	}
	return nil
}

func (cs *campgroundService) uploadAll(ctx context.Context, files []io.Reader) ([]models.Image, error) {
	uploaded := make([]models.Image, 0, len(files))
	for _, file := range files {
		img, err := cs.uploader.Upload(ctx, file)
		if err != nil {
			cs.destroyAll(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, img)
	}
	return uploaded, nil
}

func (cs *campgroundService) destroyAll(ctx context.Context, images []models.Image) {
	for _, img := range images {
		if err := cs.uploader.Destroy(ctx, img.PublicID); err != nil {
			util.LogWarning("image %s could not be removed from object store: %v", img.PublicID, err)
		}
	}
}

// ownedPublicIDs filters a client-submitted deletion list down to ids that
// are actually attached to the campground, so a tampered payload cannot
// reach foreign assets.
func (cs *campgroundService) ownedPublicIDs(campground *models.Campground, requested []string) []string {
	if len(requested) == 0 {
		return nil
	}
	owned := make(map[string]bool, len(campground.Images))
	for _, img := range campground.Images {
		owned[img.PublicID] = true
	}
	ids := make([]string, 0, len(requested))
	for _, publicID := range requested {
		if owned[publicID] {
			ids = append(ids, publicID)
		}
	}
	return ids
}
