package main

import (
	"context"
	"net/http"
	"time"

	"storefinder-api/internal/cache"
	"storefinder-api/internal/config"
	"storefinder-api/internal/handler"
	"storefinder-api/internal/metrics"
	"storefinder-api/internal/repository"
	"storefinder-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const productCacheTTL = 5 * time.Minute

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Optional redis cache in front of product lookups
	var rdb *redis.Client
	if config.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
		})
		defer rdb.Close()
	}

	// Initialize layers
	storeRepo := repository.NewStoreRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	products := cache.NewCachedProductLookup(rdb, productRepo, productCacheTTL)

	searchService := service.NewStoreSearchService(storeRepo, products)
	searchHandler := handler.NewStoreSearchHandler(searchService)

	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handler.RequestLogger(log.Logger))
	r.Use(handler.Measure())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/stores/nearby", searchHandler.FindNearby)
	r.GET("/stores/nearby/product", searchHandler.FindNearbyWithProductName)
	r.GET("/stores/nearby/product/:id", searchHandler.FindNearbyWithProductID)
	r.GET("/stores/nearby/tags", searchHandler.FindNearbyFilteredByTags)
	r.GET("/stores/search", searchHandler.SearchNearbyFullText)

	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
