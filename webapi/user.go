package webapi

import (
	"github.com/amirasaad/greenpoints/pkg/config"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/middleware"
	"github.com/amirasaad/greenpoints/pkg/service/auth"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

// UserRoutes registers the profile and reporting endpoints.
//
// Routes:
//   - GET /user/profile   : Current user's profile read model.
//   - PUT /user/profile   : Partial profile update.
//   - GET /user/dashboard : Landing-page aggregates.
//   - GET /user/stats     : Six-month activity report.
//   - GET /user/referral  : Referral code, generated on first access.
func UserRoutes(app *fiber.App, userSvc *usersvc.Service, authSvc *auth.Service, cfg *config.App) {
	app.Get("/user/profile", middleware.JwtProtected(cfg.Jwt), GetProfile(userSvc, authSvc))
	app.Put("/user/profile", middleware.JwtProtected(cfg.Jwt), UpdateProfile(userSvc, authSvc))
	app.Get("/user/dashboard", middleware.JwtProtected(cfg.Jwt), GetDashboard(userSvc, authSvc))
	app.Get("/user/stats", middleware.JwtProtected(cfg.Jwt), GetStats(userSvc, authSvc))
	app.Get("/user/referral", middleware.JwtProtected(cfg.Jwt), GetReferralCode(userSvc, authSvc))
}

// GetProfile returns the current user's profile.
func GetProfile(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to fetch profile for user %s: %v", userID, err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch profile", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Profile fetched", Data: u})
	}
}

// UpdateProfile applies a partial profile update. Absent fields are left
// untouched.
func UpdateProfile(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := BindAndValidate[UpdateProfileRequest](c)
		if err != nil {
			return nil
		}
		u, err := userSvc.Update(c.Context(), userID, dto.UserUpdate{
			Name:    input.Name,
			Phone:   input.Phone,
			Address: input.Address,
			City:    input.City,
			State:   input.State,
			ZipCode: input.ZipCode,
		})
		if err != nil {
			log.Errorf("Failed to update profile for user %s: %v", userID, err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to update profile", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Profile updated", Data: u})
	}
}

// GetDashboard returns the landing-page aggregates.
func GetDashboard(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		d, err := userSvc.Dashboard(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch dashboard", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Dashboard fetched", Data: d})
	}
}

// GetStats returns the six-month activity report.
func GetStats(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		stats, err := userSvc.Stats(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch stats", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Stats fetched", Data: stats})
	}
}

// GetReferralCode returns the caller's referral code, generating it on
// first access.
func GetReferralCode(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		code, err := userSvc.ReferralCode(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch referral code", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Referral code fetched", Data: fiber.Map{"referralCode": code}})
	}
}
