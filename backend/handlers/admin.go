package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/mektycoon/mekgold/backend/models"
	"github.com/mektycoon/mekgold/backend/utils"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

func AdminUpsertModifierType(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ModifierTypeRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if errs := utils.ValidateModifierTypeRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		mt := req.ToModel()
		if err := webApp.Gold.UpsertModifierType(c.Context(), mt); err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, mt, "Modifier type saved")
	}
}

// AdminAccountUpdate applies one administrative account update selected by
// the request's type field.
func AdminAccountUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		var req webmodels.AccountUpdateRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		update, err := accountUpdateFromRequest(&req)
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		account, err := webApp.Gold.ApplyAccountUpdate(c.Context(), id, update)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewAccountView(account), "Account updated: "+update.Name())
	}
}

func accountUpdateFromRequest(req *webmodels.AccountUpdateRequest) (gold.AccountUpdate, error) {
	switch req.Type {
	case "set_balance":
		if req.Amount == nil {
			return nil, fmt.Errorf("set_balance requires amount")
		}
		return gold.SetBalance{Amount: *req.Amount}, nil
	case "set_role":
		if req.Role == "" {
			return nil, fmt.Errorf("set_role requires role")
		}
		return gold.SetRole{Role: req.Role}, nil
	case "set_level":
		if req.Level == nil {
			return nil, fmt.Errorf("set_level requires level")
		}
		return gold.SetLevel{Level: *req.Level}, nil
	case "reset_accrual_clock":
		return gold.ResetAccrualClock{}, nil
	default:
		return nil, fmt.Errorf("unknown update type %q", req.Type)
	}
}

func AdminSweep(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := webApp.Gold.SweepExpiredModifiers(c.Context())
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, res, "Sweep complete")
	}
}

func AdminSeed(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := webApp.Gold.SeedModifierTypes(c.Context())
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{"seeded": n}, "Modifier types seeded")
	}
}
