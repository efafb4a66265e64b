package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campwild-api-io/api/internal/middleware"
	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/services"
	"campwild-api-io/api/pkg/util"
)

type CampgroundController struct {
	campgroundService services.CampgroundService
}

func InitCampgroundController(campgroundService services.CampgroundService) *CampgroundController {
	return &CampgroundController{campgroundService: campgroundService}
}

// CreateCampground handles POST /v1/campgrounds. The payload arrives as a
// multipart form: a "data" field with the campground JSON plus zero or
// more files under "images".
func (cc *CampgroundController) CreateCampground() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			return
		}

		var newCampground models.NewCampground
		if err := bindDataField(c, &newCampground); err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid JSON data")
			return
		}

		files, closeFiles, err := openFormFiles(c)
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid file upload")
			return
		}
		defer closeFiles()

		campground, err := cc.campgroundService.Create(ctx, session.UserId, newCampground, files)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Campground was created successfully", gin.H{"campground": campground})
	}
}

// GetCampground handles GET /v1/campgrounds/:campgroundid, accepting an
// object id or a slug.
func (cc *CampgroundController) GetCampground() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		detail, err := cc.campgroundService.GetDetail(ctx, c.Param("campgroundid"))
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"campground": detail})
	}
}

// GetCampgrounds handles GET /v1/campgrounds?limit=20&skip=0&sort=...
func (cc *CampgroundController) GetCampgrounds() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		args := util.GetPaginationArgs(c)
		campgrounds, count, err := cc.campgroundService.List(ctx, args)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", gin.H{"campgrounds": campgrounds}, gin.H{
			"pagination": util.Pagination{
				Limit: args.Limit,
				Skip:  args.Skip,
				Count: count,
			},
		})
	}
}

// UpdateCampground handles PUT /v1/campgrounds/:campgroundid with the same
// multipart shape as create, plus an optional deleteImages list inside the
// data JSON.
func (cc *CampgroundController) UpdateCampground() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("campgroundid"))
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid campground id was provided")
			return
		}

		var update models.UpdateCampground
		if err := bindDataField(c, &update); err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid JSON data")
			return
		}

		files, closeFiles, err := openFormFiles(c)
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid file upload")
			return
		}
		defer closeFiles()

		campground, err := cc.campgroundService.Update(ctx, session.UserId, id, update, files)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Campground was updated successfully", gin.H{"campground": campground})
	}
}

// DeleteCampground handles DELETE /v1/campgrounds/:campgroundid and
// cascades to the campground's reviews.
func (cc *CampgroundController) DeleteCampground() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("campgroundid"))
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid campground id was provided")
			return
		}

		if err := cc.campgroundService.Delete(ctx, session.UserId, id); err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Campground was deleted successfully", gin.H{"_id": id.Hex()})
	}
}
