package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"propsite_backend/pkg/sheets"
	"propsite_backend/pkg/utils/validation"
)

type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10,max=20"`
	Message string `json:"message" validate:"required,min=20,max=5000"`
}

type ValuationForm struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10,max=20"`
	PropertyAddress string `json:"propertyAddress" validate:"required,min=5,max=300"`
	PropertyType    string `json:"propertyType" validate:"required,oneof=residential commercial ancillary"`
	Bedrooms        *int   `json:"bedrooms" validate:"omitempty,min=0,max=20"`
	Message         string `json:"message" validate:"omitempty,max=5000"`
}

type InspectionForm struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10,max=20"`
	PreferredDate   string `json:"preferredDate" validate:"required,datetime=2006-01-02"`
	ListingSlug     string `json:"listingSlug" validate:"required_without=PropertyAddress"`
	PropertyAddress string `json:"propertyAddress" validate:"required_without=ListingSlug,max=300"`
	Message         string `json:"message" validate:"omitempty,max=5000"`
}

// sheetsForms maps a payload's formType to the schema it must satisfy.
// Payloads without a known formType are forwarded untouched.
var sheetsForms = map[string]func() interface{}{
	"contact":    func() interface{} { return new(ContactForm) },
	"valuation":  func() interface{} { return new(ValuationForm) },
	"inspection": func() interface{} { return new(InspectionForm) },
	"booking":    func() interface{} { return new(BookingInput) },
}

var (
	forwarder         *sheets.Forwarder
	sheetsAllowOrigin = "*"
)

func InitSheetsController(f *sheets.Forwarder, allowOrigin string) {
	forwarder = f
	if allowOrigin != "" {
		sheetsAllowOrigin = allowOrigin
	}
}

func validateSheetsForm(payload map[string]interface{}) ([]validation.FieldError, error) {
	formType, _ := payload["formType"].(string)
	newForm, ok := sheetsForms[strings.ToLower(formType)]
	if !ok {
		return nil, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	form := newForm()
	if err := json.Unmarshal(raw, form); err != nil {
		return nil, err
	}
	return validation.ValidateStruct(form), nil
}

// ForwardToSheets relays a form payload to the spreadsheet webhook.
func ForwardToSheets(c *fiber.Ctx) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Request body must be a JSON object",
		})
	}

	errs, err := validateSheetsForm(payload)
	if err != nil {
		return bodyError(c, err)
	}
	if errs != nil {
		return validationFailed(c, errs)
	}

	if forwarder == nil {
		zap.L().Error("sheets forwarder not initialised")
		return misconfigured(c)
	}

	res, err := forwarder.Forward(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, sheets.ErrNotConfigured) {
			zap.L().Error("SHEETS_WEBHOOK_URL is not set in production, refusing submission")
			return misconfigured(c)
		}

		var upErr *sheets.UpstreamError
		if errors.As(err, &upErr) {
			zap.L().Error("sheets webhook failed", zap.Int("status", upErr.StatusCode), zap.Error(upErr.Err))
		} else {
			zap.L().Error("could not forward submission", zap.Error(err))
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   submitFailedMessage,
		})
	}

	if res.StoredLocal {
		zap.L().Info("sheets webhook not configured, stored submission locally", zap.String("path", res.FallbackPath))
		return c.JSON(fiber.Map{
			"success": true,
			"stored":  "local",
		})
	}

	if res.ContentType != "" {
		c.Set(fiber.HeaderContentType, res.ContentType)
	}
	return c.Status(res.StatusCode).Send(res.Body)
}

func misconfigured(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Server misconfiguration: spreadsheet webhook is not configured",
	})
}

// SheetsPreflight answers CORS preflight requests for the proxy.
func SheetsPreflight(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, sheetsAllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
	c.Set(fiber.HeaderAccessControlMaxAge, "86400")
	return c.SendStatus(fiber.StatusNoContent)
}
