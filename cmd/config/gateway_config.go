package config

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/internal/utils"
	"Go-Recipe-Admin/pkg/account"
	"Go-Recipe-Admin/pkg/gateway"
	"Go-Recipe-Admin/pkg/jwt"
	"Go-Recipe-Admin/pkg/recipe"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

var ErrDatabaseRequired = errors.New("database gateway mode needs a database connection")

// Gateways bundles the remote collaborators shared by the web and console surfaces.
type Gateways struct {
	Recipes  recipe.RecipeGateway
	Accounts account.AccountGateway
	Cache    *recipe.RecipeCache
}

// NeedsDatabase reports whether GATEWAY_MODE talks to postgres directly.
func NeedsDatabase() bool {
	return utils.GetConfig("GATEWAY_MODE") == domain.GatewayModeDatabase
}

func NewGateways(db *gorm.DB) (Gateways, error) {
	cache := recipe.NewRecipeCache()

	switch mode := utils.GetConfig("GATEWAY_MODE"); mode {
	case domain.GatewayModeDatabase:
		if db == nil {
			return Gateways{}, ErrDatabaseRequired
		}
		log.Infow("using database gateway")
		return Gateways{
			Recipes:  recipe.NewDBRecipeGateway(recipe.NewRecipeRepository(db)),
			Accounts: account.NewDBAccountGateway(account.NewAccountRepository(db)),
			Cache:    cache,
		}, nil
	case domain.GatewayModeHTTP, "":
		baseURL := utils.GetConfig("API_BASE_URL")
		log.Infow("using http gateway", "base_url", baseURL)
		client := gateway.NewClient(
			baseURL,
			utils.GetDuration("API_TIMEOUT_SECONDS", time.Second),
			jwt.NewJWTService(),
		)
		return Gateways{
			Recipes:  recipe.NewHTTPRecipeGateway(client),
			Accounts: account.NewHTTPAccountGateway(client),
			Cache:    cache,
		}, nil
	default:
		return Gateways{}, fmt.Errorf("unknown GATEWAY_MODE %q", mode)
	}
}
