package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/mektycoon/mekgold/backend/models"
	"github.com/mektycoon/mekgold/backend/utils"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

// GoldService is the economy surface the HTTP layer drives.
type GoldService interface {
	EnsureAccount(ctx context.Context, accountID string) (*models.Account, bool, error)
	Snapshot(ctx context.Context, accountID string) (*gold.AccountSnapshot, error)
	Collect(ctx context.Context, accountID string) (*gold.CollectResult, error)
	RecomputeRate(ctx context.Context, accountID string) (*gold.RecomputeResult, error)
	Spend(ctx context.Context, accountID string, amount float64) (*gold.SpendResult, error)
	ListSettlements(ctx context.Context, accountID string, limit int) ([]*models.Settlement, error)

	ListAssets(ctx context.Context, accountID string) ([]*models.Asset, error)
	AcquireAsset(ctx context.Context, accountID, name string, level int) (*gold.AssetResult, error)
	SetAssetLevel(ctx context.Context, accountID string, assetID int64, level int) (*gold.AssetResult, error)

	ListModifiers(ctx context.Context, accountID string, includeInactive bool) ([]*models.Modifier, error)
	GrantModifier(ctx context.Context, req gold.GrantRequest) (*gold.GrantResult, error)
	RevokeModifier(ctx context.Context, modifierID int64) (*gold.RevokeResult, error)
	SweepExpiredModifiers(ctx context.Context) (*gold.SweepResult, error)

	ListModifierTypes(ctx context.Context) ([]*models.ModifierType, error)
	GetModifierType(ctx context.Context, id string) (models.ModifierType, error)
	UpsertModifierType(ctx context.Context, mt *models.ModifierType) error
	SeedModifierTypes(ctx context.Context) (int, error)
	ApplyAccountUpdate(ctx context.Context, accountID string, update gold.AccountUpdate) (*models.Account, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type SweepStatus interface {
	Last() (*gold.SweepResult, int)
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Gold       GoldService
	DB         Pinger
	Sweeper    SweepStatus
	AdminToken string
	Version    string
	Commit     string
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// accountID reads and validates the :id path parameter.
func accountID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if errs := utils.ValidateAccountID(id); len(errs) > 0 {
		return "", fiber.NewError(fiber.StatusBadRequest, errs[0].Message)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	return nil
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Version, webApp.Commit)

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := webApp.DB.Ping(ctx); err != nil {
			health.AddComponent("database", "unhealthy", err.Error(), nil)
		} else {
			health.AddComponent("database", "healthy", "", nil)
		}

		if webApp.Sweeper != nil {
			last, runs := webApp.Sweeper.Last()
			details := map[string]interface{}{"runs": runs}
			if last != nil {
				details["last_deactivated"] = last.Deactivated
				details["last_failed"] = len(last.Failed)
			}
			health.AddComponent("sweeper", "healthy", "", details)
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, webmodels.NewSuccessResponse(health, "Health check"))
	}
}
