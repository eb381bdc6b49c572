package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/mektycoon/mekgold/backend/models"
	"github.com/mektycoon/mekgold/backend/utils"
)

func AccountsEnsure(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		account, created, err := webApp.Gold.EnsureAccount(c.Context(), id)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		if created {
			return utils.SendCreated(c, webmodels.NewAccountView(account), "Account created")
		}
		return utils.SendSuccess(c, webmodels.NewAccountView(account), "Account exists")
	}
}

func AccountsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		snap, err := webApp.Gold.Snapshot(c.Context(), id)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.AccountDetail{
			Account:   webmodels.NewAccountView(snap.Account),
			Assets:    webmodels.NewAssetViews(snap.Assets),
			Modifiers: webmodels.NewModifierViews(snap.Modifiers),
			Live:      snap,
		}, "")
	}
}

func AccountsCollect(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		res, err := webApp.Gold.Collect(c.Context(), id)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		message := "Gold collected"
		if res.WasCapped {
			message = "Gold collected; accrual beyond the cap was forfeited"
		}
		return utils.SendSuccess(c, res, message)
	}
}

func AccountsRecompute(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		res, err := webApp.Gold.RecomputeRate(c.Context(), id)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, res, "Rate recomputed")
	}
}

func AccountsSpend(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		var req webmodels.SpendRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if req.Amount <= 0 {
			return utils.HandleValidationErrors(c, []webmodels.ValidationError{{Field: "amount", Message: "Amount must be positive"}})
		}

		res, err := webApp.Gold.Spend(c.Context(), id, req.Amount)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, res, "Gold spent")
	}
}

func AccountsSettlements(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		settlements, err := webApp.Gold.ListSettlements(c.Context(), id, c.QueryInt("limit", 50))
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, settlements, "")
	}
}

func AssetsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		assets, err := webApp.Gold.ListAssets(c.Context(), id)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewAssetViews(assets), "")
	}
}

func AssetsAcquire(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		var req webmodels.AcquireAssetRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if errs := utils.ValidateAcquireAssetRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		res, err := webApp.Gold.AcquireAsset(c.Context(), id, req.Name, req.Level)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendCreated(c, assetResponse(res), "Asset acquired")
	}
}

func AssetsSetLevel(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}
		assetID, err := parseInt64(c.Params("assetId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid asset ID", nil)
		}

		var req webmodels.SetAssetLevelRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if errs := utils.ValidateSetAssetLevelRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		res, err := webApp.Gold.SetAssetLevel(c.Context(), id, assetID, req.Level)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, assetResponse(res), "Asset level updated")
	}
}
