package webapi

import (
	"errors"

	"github.com/amirasaad/greenpoints/pkg/config"
	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/middleware"
	"github.com/amirasaad/greenpoints/pkg/service/auth"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func AuthRoutes(app *fiber.App, userSvc *usersvc.Service, authSvc *auth.Service, cfg *config.App) {
	app.Post("/auth/register", Register(userSvc, authSvc))
	app.Post("/auth/login", Login(authSvc))
	app.Get("/auth/me", middleware.JwtProtected(cfg.Jwt), Me(userSvc, authSvc))
}

// Register creates a user with a zero-valued wallet and returns the user
// together with a fresh token.
func Register(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterInput](c)
		if err != nil {
			return nil
		}
		u, err := userSvc.Register(c.Context(), dto.UserCreate{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Phone:    input.Phone,
			Address:  input.Address,
			City:     input.City,
			State:    input.State,
			ZipCode:  input.ZipCode,
		})
		if err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				return ErrorResponseJSON(c, fiber.StatusConflict, "Email already registered", err.Error())
			}
			log.Errorf("Failed to register user: %v", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to register", ErrorDetail(err))
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			log.Errorf("Failed to sign token: %v", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Registration successful",
			Data:    fiber.Map{"user": u, "token": token},
		})
	}
}

// Me returns the authenticated user's read model.
func Me(userSvc *usersvc.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return nil
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to fetch user %s: %v", userID, err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to fetch user", ErrorDetail(err))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "User fetched", Data: u})
	}
}

// Login authenticates the user and returns a JWT token.
func Login(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if err != nil {
			return nil
		}
		u, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
			}
			log.Errorf("Login failed: %v", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			log.Errorf("Failed to sign token: %v", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success login",
			Data:    fiber.Map{"user": u, "token": token},
		})
	}
}
