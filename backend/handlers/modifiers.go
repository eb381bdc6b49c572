package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/mektycoon/mekgold/backend/models"
	"github.com/mektycoon/mekgold/backend/utils"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

func ModifiersList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		mods, err := webApp.Gold.ListModifiers(c.Context(), id, c.QueryBool("include_inactive", false))
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewModifierViews(mods), "")
	}
}

// ModifiersGrant grants or stacks a modifier. A grant at max stacks is a
// successful response with outcome max_stacks, not an error.
func ModifiersGrant(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountID(c)
		if err != nil {
			return err
		}

		var req webmodels.GrantModifierRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if errs := utils.ValidateGrantModifierRequest(&req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		grant := gold.GrantRequest{
			AccountID: id,
			TypeID:    req.Type,
			Source:    req.Source,
			Magnitude: req.Magnitude,
		}
		if req.DurationMs != nil {
			d := time.Duration(*req.DurationMs) * time.Millisecond
			grant.Duration = &d
		}

		res, err := webApp.Gold.GrantModifier(c.Context(), grant)
		if err != nil {
			return utils.SendServiceError(c, err)
		}

		body := webmodels.GrantModifierResponse{GrantResult: res, Modifier: webmodels.NewModifierView(res.Modifier)}
		switch res.Outcome {
		case gold.GrantCreated:
			return utils.SendCreated(c, body, "Modifier granted")
		case gold.GrantMaxStacks:
			return utils.SendSuccess(c, body, "Modifier is already at max stacks")
		default:
			return utils.SendSuccess(c, body, "Modifier stacked")
		}
	}
}

func ModifiersRevoke(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		modifierID, err := parseInt64(c.Params("modifierId"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid modifier ID", nil)
		}

		res, err := webApp.Gold.RevokeModifier(c.Context(), modifierID)
		if err != nil {
			return utils.SendServiceError(c, err)
		}

		message := "Modifier revoked"
		if res.AlreadyInactive {
			message = "Modifier was already inactive"
		}
		return utils.SendSuccess(c, webmodels.RevokeModifierResponse{
			RevokeResult: res,
			Modifier:     webmodels.NewModifierView(res.Modifier),
		}, message)
	}
}

func ModifierTypesList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := webApp.Gold.ListModifierTypes(c.Context())
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, types, "")
	}
}

func ModifierTypesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		typeID := c.Params("typeId")
		if !utils.ValidIdentifierRegex.MatchString(typeID) {
			return utils.SendBadRequest(c, "Invalid modifier type ID", nil)
		}

		mt, err := webApp.Gold.GetModifierType(c.Context(), typeID)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, mt, "")
	}
}

func assetResponse(res *gold.AssetResult) webmodels.AssetResponse {
	return webmodels.AssetResponse{
		AssetResult: res,
		Asset:       webmodels.NewAssetView(res.Asset),
	}
}
