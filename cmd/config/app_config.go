package config

import (
	"Go-Recipe-Admin/internal/api/handlers"
	"Go-Recipe-Admin/internal/api/routes"
	"Go-Recipe-Admin/internal/utils"
	"Go-Recipe-Admin/internal/utils/storage"
	"Go-Recipe-Admin/pkg/recipe"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const pageSweepInterval = time.Minute

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Gateway
	gateways, err := NewGateways(db)
	if err != nil {
		return nil, err
	}

	// Page sessions
	pageTTL := utils.GetDuration("PAGE_TTL_SECONDS", time.Second)
	createPages := recipe.NewPageStore[*handlers.CreateSession](pageTTL)
	editPages := recipe.NewPageStore[*handlers.EditSession](pageTTL)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go createPages.Run(sweepCtx, pageSweepInterval)
	go editPages.Run(sweepCtx, pageSweepInterval)
	app.Hooks().OnShutdown(func() error {
		stopSweep()
		return nil
	})

	// Handler
	recipePageHandler := handlers.NewRecipePageHandler(handlers.RecipePageConfig{
		RecipeGateway:  gateways.Recipes,
		AccountGateway: gateways.Accounts,
		Cache:          gateways.Cache,
		Validator:      validator,
		CreatePages:    createPages,
		EditPages:      editPages,
		S3:             s3,
		Debounce:       utils.GetDuration("ACCOUNT_SEARCH_DEBOUNCE_MS", time.Millisecond),
		SearchTimeout:  utils.GetDuration("API_TIMEOUT_SECONDS", time.Second),
	})
	accountHandler := handlers.NewAccountHandler(gateways.Accounts, handlers.SessionSelectors(createPages, editPages))

	// routes
	routesConfig := routes.Config{
		App:               app,
		RecipePageHandler: recipePageHandler,
		AccountHandler:    accountHandler,
	}
	routesConfig.Setup()
	return app, nil
}
