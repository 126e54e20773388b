package webapi

import (
	"github.com/amirasaad/greenpoints/pkg/config"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/middleware"
	"github.com/amirasaad/greenpoints/pkg/service/auth"
	pointssvc "github.com/amirasaad/greenpoints/pkg/service/points"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type SubmitRequest struct {
	ItemType    string  `json:"itemType" validate:"required"`
	Condition   string  `json:"condition" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	Weight      float64 `json:"weight" validate:"omitempty,gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

type CalculateRequest struct {
	ItemType  string  `json:"itemType" validate:"required"`
	Condition string  `json:"condition" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Weight    float64 `json:"weight" validate:"omitempty,gte=0"`
}

type RedeemRequest struct {
	Points      int    `json:"points" validate:"required,gt=0"`
	RedeemFor   string `json:"redeemFor" validate:"required"`
	Description string `json:"description"`
}

// PointsRoutes registers the wallet endpoints. All of them require a
// valid token.
//
// Routes:
//   - POST /points/submit    : Credit points for an e-waste submission.
//   - POST /points/calculate : Preview the award without crediting.
//   - POST /points/redeem    : Debit points from the wallet.
//   - GET  /points/balance   : Balance and lifetime totals.
//   - GET  /points/history   : Paginated transaction history.
//   - GET  /points/badges    : Earned badges with display metadata.
//   - GET  /points/2x-status : State of the 24h double-value window.
func PointsRoutes(app *fiber.App, pointsSvc *pointssvc.Service, authSvc *auth.Service, cfg *config.App) {
	app.Post("/points/submit", middleware.JwtProtected(cfg.Jwt), SubmitEWaste(pointsSvc, authSvc))
	app.Post("/points/calculate", middleware.JwtProtected(cfg.Jwt), CalculatePoints(pointsSvc, authSvc))
	app.Post("/points/redeem", middleware.JwtProtected(cfg.Jwt), RedeemPoints(pointsSvc, authSvc))
	app.Get("/points/balance", middleware.JwtProtected(cfg.Jwt), GetBalance(pointsSvc, authSvc))
	app.Get("/points/history", middleware.JwtProtected(cfg.Jwt), GetHistory(pointsSvc, authSvc))
	app.Get("/points/badges", middleware.JwtProtected(cfg.Jwt), GetBadges(pointsSvc, authSvc))
	app.Get("/points/2x-status", middleware.JwtProtected(cfg.Jwt), Get2XStatus(pointsSvc, authSvc))
}

// currentUserID resolves the authenticated user from the request context.
// A nil uuid plus false means the error response has already been written.
func currentUserID(c *fiber.Ctx, authSvc *auth.Service) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		ErrorResponseJSON(c, fiber.StatusUnauthorized, "unauthorized", "missing user context")
		return uuid.Nil, false
	}
	userID, err := authSvc.CurrentUserID(token)
	if err != nil {
		log.Errorf("Failed to parse user ID from token: %v", err)
		ErrorResponseJSON(c, fiber.StatusUnauthorized, "invalid user ID", err.Error())
		return uuid.Nil, false
	}
	return userID, true
}

// SubmitEWaste credits the calculated award to the caller's wallet.
func SubmitEWaste(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[SubmitRequest](c)
		if err != nil {
			return nil
		}
		result, err := pointsSvc.Submit(c.Context(), userID, dto.SubmitEWaste{
			ItemType:    input.ItemType,
			Condition:   input.Condition,
			Quantity:    input.Quantity,
			Weight:      input.Weight,
			Description: input.Description,
			ImageURL:    input.ImageURL,
		})
		if err != nil {
			log.Errorf("Failed to submit e-waste: %v", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to submit e-waste", ErrorDetail(err))
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Points credited",
			Data:    result,
		})
	}
}

// CalculatePoints previews the award without touching the ledger.
func CalculatePoints(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[CalculateRequest](c)
		if err != nil {
			return nil
		}
		result, err := pointsSvc.Calculate(c.Context(), userID, dto.SubmitEWaste{
			ItemType:  input.ItemType,
			Condition: input.Condition,
			Quantity:  input.Quantity,
			Weight:    input.Weight,
		})
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to calculate points", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Points calculated", Data: result})
	}
}

// RedeemPoints debits points from the caller's wallet.
func RedeemPoints(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[RedeemRequest](c)
		if err != nil {
			return nil
		}
		result, err := pointsSvc.Redeem(c.Context(), userID, dto.Redeem{
			Points:      input.Points,
			RedeemFor:   input.RedeemFor,
			Description: input.Description,
		})
		if err != nil {
			log.Errorf("Failed to redeem points: %v", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to redeem points", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Points redeemed", Data: result})
	}
}

// GetBalance returns the balance snapshot.
func GetBalance(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		balance, err := pointsSvc.Balance(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to fetch balance for user %s: %v", userID, err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch balance", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Balance fetched", Data: balance})
	}
}

// GetHistory returns one newest-first page of transactions. Supports
// page, limit and type=credit|debit query parameters.
func GetHistory(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 20)
		kind := wallet.Kind(c.Query("type"))
		if kind != "" && kind != wallet.KindCredit && kind != wallet.KindDebit {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction type", "type must be credit or debit")
		}
		history, err := pointsSvc.History(c.Context(), userID, page, limit, kind)
		if err != nil {
			log.Errorf("Failed to fetch history for user %s: %v", userID, err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch history", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "History fetched", Data: history})
	}
}

// GetBadges returns the caller's earned badges.
func GetBadges(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		badges, err := pointsSvc.Badges(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch badges", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Badges fetched", Data: fiber.Map{"badges": badges}})
	}
}

// Get2XStatus reports whether the 24h double-value window is active.
func Get2XStatus(pointsSvc *pointssvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		status, err := pointsSvc.BonusStatus(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch 2X status", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "2X status fetched", Data: status})
	}
}
