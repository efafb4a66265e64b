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

type ReviewController struct {
	reviewService services.ReviewService
}

func InitReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// CreateReview handles POST /v1/campgrounds/:campgroundid/reviews
func (rc *ReviewController) CreateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			return
		}

		campgroundID, err := primitive.ObjectIDFromHex(c.Param("campgroundid"))
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid campground id was provided")
			return
		}

		var reviewRequest models.ReviewRequest
		if err := c.BindJSON(&reviewRequest); err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid JSON data")
			return
		}

		review, err := rc.reviewService.Create(ctx, session.UserId, session.Username, campgroundID, reviewRequest)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Review added successfully", gin.H{"review": review})
	}
}

// GetReviews handles GET /v1/campgrounds/:campgroundid/reviews
func (rc *ReviewController) GetReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		campgroundID, err := primitive.ObjectIDFromHex(c.Param("campgroundid"))
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid campground id was provided")
			return
		}

		args := util.GetPaginationArgs(c)
		reviews, count, err := rc.reviewService.ListByCampground(ctx, campgroundID, args)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", gin.H{"reviews": reviews}, gin.H{
			"pagination": util.Pagination{
				Limit: args.Limit,
				Skip:  args.Skip,
				Count: count,
			},
		})
	}
}

// DeleteReview handles DELETE /v1/campgrounds/:campgroundid/reviews/:reviewid
func (rc *ReviewController) DeleteReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			return
		}

		campgroundID, err := primitive.ObjectIDFromHex(c.Param("campgroundid"))
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid campground id was provided")
			return
		}
		reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewid"))
		if err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid review id was provided")
			return
		}

		if err := rc.reviewService.Delete(ctx, session.UserId, campgroundID, reviewID); err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Review deleted successfully", gin.H{
			"campgroundId": campgroundID.Hex(),
			"reviewId":     reviewID.Hex(),
		})
	}
}
