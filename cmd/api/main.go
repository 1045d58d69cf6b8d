package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/subscription"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/storage"
	"foodgram/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	var store storage.Storage
	var diskStore *storage.DiskStorage
	if cfg.StorageBackend == "s3" {
		store, err = storage.NewS3Storage(context.Background(),
			cfg.S3Bucket, cfg.S3Region, cfg.AWSAccessKey, cfg.AWSSecretKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		diskStore = storage.NewDiskStorage(cfg.MediaDir, cfg.MediaBase)
		store = diskStore
	}

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	stateRepo := repository.NewRecipeStateRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j, store)
	authHandler := auth.NewHandler(authService)

	catalogHandler := catalog.NewHandler(tagRepo, ingredientRepo)

	recipeService := recipe.NewService(recipeRepo, stateRepo, tagRepo, ingredientRepo, store, cfg.BaseURL)
	recipeHandler := recipe.NewHandler(recipeService)

	subscriptionService := subscription.NewService(subscriptionRepo, userRepo, recipeRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	if diskStore != nil {
		r.Static(cfg.MediaBase, diskStore.BaseDir())
	}
	recipeHandler.RegisterShortLinkRoute(r)

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterRoutes(api)

		// публичные выборки: анонимам можно, user_id подхватывается при наличии токена
		public := api.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			recipeHandler.RegisterPublicRoutes(public)
		}

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			recipeHandler.RegisterProtectedRoutes(protected)
			subscriptionHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
