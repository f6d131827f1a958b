package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"propsite_backend/pkg/config"
	"propsite_backend/pkg/utils/jwt"
	"propsite_backend/pkg/utils/validation"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var (
	adminEmail        string
	adminPasswordHash []byte
)

func InitAuthController(cfg *config.Config) {
	adminEmail = strings.TrimSpace(cfg.Admin.Email)
	adminPasswordHash = []byte(cfg.Admin.PasswordHash)
}

// AdminLogin exchanges the office admin credentials for a bearer token.
func AdminLogin(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	input.Email = strings.TrimSpace(input.Email)

	if errs := validation.ValidateStruct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": errs,
		})
	}

	if adminEmail == "" || len(adminPasswordHash) == 0 {
		zap.L().Warn("admin login attempted without ADMIN_EMAIL/ADMIN_PASSWORD_HASH")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Admin login is not configured",
		})
	}

	if !strings.EqualFold(input.Email, adminEmail) ||
		bcrypt.CompareHashAndPassword(adminPasswordHash, []byte(input.Password)) != nil {
		zap.L().Info("failed admin login", zap.String("email", input.Email), zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := jwt.GenerateToken(adminEmail, jwt.RoleAdmin)
	if err != nil {
		if errors.Is(err, jwt.ErrNoSecret) {
			zap.L().Error("JWT_SECRET is not set")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"email": adminEmail,
			"role":  jwt.RoleAdmin,
		},
	})
}

// Me returns the claims of the signed-in admin.
func Me(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	return c.JSON(fiber.Map{
		"email": claims.Email,
		"role":  claims.Role,
	})
}
