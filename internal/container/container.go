package container

import (
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"campwild-api-io/api/internal/auth"
	"campwild-api-io/api/internal/config"
	"campwild-api-io/api/internal/database"
	"campwild-api-io/api/pkg/controllers"
	"campwild-api-io/api/pkg/geocode"
	"campwild-api-io/api/pkg/media"
	"campwild-api-io/api/pkg/repository"
	"campwild-api-io/api/pkg/sanitize"
	"campwild-api-io/api/pkg/services"
)

// ServiceContainer wires repositories, services and controllers from the
// injected store handles. No package-level state anywhere below it.
type ServiceContainer struct {
	Sessions *auth.SessionStore

	UserService       services.UserService
	CampgroundService services.CampgroundService
	ReviewService     services.ReviewService

	UserController       *controllers.UserController
	CampgroundController *controllers.CampgroundController
	ReviewController     *controllers.ReviewController
}

func NewServiceContainer(cfg config.Config, mongoClient *mongo.Client, redisClient *redis.Client) (*ServiceContainer, error) {
	collections := database.NewCollections(mongoClient.Database(cfg.DBName))

	validate := validator.New()
	if err := sanitize.New().RegisterNoHTML(validate); err != nil {
		return nil, err
	}

	uploader, err := media.NewCloudinaryUploader(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		return nil, err
	}

	geocoder := geocode.NewMapboxClient(cfg.MapboxToken)
	sessions := auth.NewSessionStore(redisClient, cfg.SessionTTL)

	store := repository.NewMongoStore(mongoClient)
	campgroundRepo := repository.NewMongoCampgroundRepository(collections.Campgrounds)
	reviewRepo := repository.NewMongoReviewRepository(collections.Reviews)
	userRepo := repository.NewMongoUserRepository(collections.Users)

	userService := services.NewUserService(userRepo, validate, cfg.GoogleClientID)
	campgroundService := services.NewCampgroundService(store, campgroundRepo, reviewRepo, geocoder, uploader, validate)
	reviewService := services.NewReviewService(store, campgroundRepo, reviewRepo, validate)

	return &ServiceContainer{
		Sessions: sessions,

		UserService:       userService,
		CampgroundService: campgroundService,
		ReviewService:     reviewService,

		UserController:       controllers.InitUserController(userService, sessions),
		CampgroundController: controllers.InitCampgroundController(campgroundService),
		ReviewController:     controllers.InitReviewController(reviewService),
	}, nil
}
