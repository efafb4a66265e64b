package main

import (
	"context"
	"log"

	"campwild-api-io/api/internal/config"
	"campwild-api-io/api/internal/container"
	"campwild-api-io/api/internal/database"
	"campwild-api-io/api/internal/routers"
)

func main() {
	cfg := config.Load()

	mongoClient, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to MongoDB: ", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Println("error disconnecting from MongoDB:", err)
		}
	}()

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to connect to redis: ", err)
	}
	defer redisClient.Close()

	db := mongoClient.Database(cfg.DBName)
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Fatal("failed to ensure user indexes: ", err)
	}
	if err := database.EnsureCampgroundIndexes(db); err != nil {
		log.Fatal("failed to ensure campground indexes: ", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Fatal("failed to ensure review indexes: ", err)
	}
	if err := database.EnsureValidators(db); err != nil {
		log.Fatal("failed to ensure collection validators: ", err)
	}

	sc, err := container.NewServiceContainer(cfg, mongoClient, redisClient)
	if err != nil {
		log.Fatal("failed to build service container: ", err)
	}

	router := routers.InitRoute(sc, redisClient)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server exited: ", err)
	}
}
