// Package media wraps the Cloudinary object store used for campground
// images.
package media

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/pkg/errors"

	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/models"
)

type Uploader interface {
	// Upload stores a file and returns its served URL plus the external id
	// needed to delete it later.
	Upload(ctx context.Context, file interface{}) (models.Image, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (cu *CloudinaryUploader) Upload(ctx context.Context, file interface{}) (models.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, 40*time.Second)
	defer cancel()

	res, err := cu.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: cu.folder})
	if err != nil {
		return models.Image{}, apperr.Wrap(apperr.Upstream, err, "image upload failed")
	}

	return models.Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (cu *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, 40*time.Second)
	defer cancel()

	res, err := cu.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return apperr.Wrap(apperr.Upstream, err, "image deletion failed")
	}
	if res.Result != "ok" && res.Result != "not found" {
		return apperr.Wrap(apperr.Upstream, errors.Errorf("cloudinary destroy result %q", res.Result), "image deletion failed")
	}
	return nil
}
