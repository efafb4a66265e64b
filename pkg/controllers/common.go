package controllers

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const requestTimeout = 30 * time.Second

func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// bindDataField decodes the JSON carried in the "data" field of a
// multipart form.
func bindDataField(c *gin.Context, out interface{}) error {
	jsonData := c.PostForm("data")
	if jsonData == "" {
		return errors.New("missing data field")
	}
	return json.Unmarshal([]byte(jsonData), out)
}

// openFormFiles opens every file uploaded under the "images" field. The
// returned closer must be called once the readers are consumed.
func openFormFiles(c *gin.Context) ([]io.Reader, func(), error) {
	closer := func() {}

	if c.Request.MultipartForm == nil {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			return nil, closer, errors.Wrap(err, "failed to parse multipart form")
		}
	}

	headers := c.Request.MultipartForm.File["images"]
	files := make([]io.Reader, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closer = func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closer()
			return nil, func() {}, errors.Wrap(err, "failed to open uploaded file")
		}
		opened = append(opened, file)
		files = append(files, file)
	}

	return files, closer, nil
}
