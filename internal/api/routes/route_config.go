package routes

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	RecipePageHandler handlers.RecipePageHandler
	AccountHandler    handlers.AccountHandler
}

func (c *Config) Setup() {
	c.GuestRoute()
	c.RecipePages()
	c.Accounts()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}

func (c *Config) RecipePages() {
	recipes := c.App.Group(domain.RecipesListPath)
	// form pages
	{
		recipes.Get("/create", c.RecipePageHandler.CreateForm)
		recipes.Post("/create", c.RecipePageHandler.SubmitCreate)
		recipes.Get("/edit/:id", c.RecipePageHandler.EditForm)
		recipes.Post("/edit/:id", c.RecipePageHandler.SubmitEdit)
	}
}

func (c *Config) Accounts() {
	accounts := c.App.Group("/api/v1/accounts")
	accounts.Get("/options", c.AccountHandler.GetAccountOptions)
}
