package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"campwild-api-io/api/internal/container"
	"campwild-api-io/api/internal/middleware"
	"campwild-api-io/api/pkg/controllers"
)

// InitRoute builds the Gin router over the service container.
func InitRoute(sc *container.ServiceContainer, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.RateLimiter(redisClient))
	{
		api.GET("/ping", controllers.Ping)

		// Public authentication routes
		api.POST("/signup", sc.UserController.CreateUser())
		api.POST("/auth", sc.UserController.HandleUserAuthentication())
		api.POST("/auth/google", sc.UserController.HandleUserGoogleAuthentication())
		api.DELETE("/logout", sc.UserController.Logout())

		campgroundRoutes(api, sc)
	}

	return router
}

func campgroundRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	campgrounds := api.Group("/campgrounds")

	campgrounds.GET("", sc.CampgroundController.GetCampgrounds())
	campgrounds.GET("/:campgroundid", sc.CampgroundController.GetCampground())
	campgrounds.GET("/:campgroundid/reviews", sc.ReviewController.GetReviews())

	secured := campgrounds.Group("").Use(middleware.Authenticated(sc.Sessions))
	{
		secured.POST("", sc.CampgroundController.CreateCampground())
		secured.PUT("/:campgroundid", sc.CampgroundController.UpdateCampground())
		secured.DELETE("/:campgroundid", sc.CampgroundController.DeleteCampground())

		secured.POST("/:campgroundid/reviews", sc.ReviewController.CreateReview())
		secured.DELETE("/:campgroundid/reviews/:reviewid", sc.ReviewController.DeleteReview())
	}

	me := api.Group("").Use(middleware.Authenticated(sc.Sessions))
	me.GET("/me", sc.UserController.Me())
}
