package controller

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/catalog"
	"propsite_backend/pkg/config"
	"propsite_backend/pkg/database"
	"propsite_backend/pkg/email"
	"propsite_backend/pkg/utils/validation"
)

const dateLayout = "2006-01-02"

type EnquiryInput struct {
	Type          string `json:"type" validate:"omitempty,oneof=GENERAL VALUATION INSPECTION"`
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=10,max=20"`
	Subject       string `json:"subject" validate:"omitempty,max=200"`
	Message       string `json:"message" validate:"required,min=20,max=5000"`
	PreferredDate string `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
	ListingID     *uint  `json:"listingId" validate:"omitempty,min=1"`
}

func (in *EnquiryInput) normalize() {
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	in.PreferredDate = strings.TrimSpace(in.PreferredDate)
}

var (
	officeEmail  string
	dashboardURL string
)

func InitEnquiryController(cfg *config.Config) {
	officeEmail = cfg.Email.OfficeEmail
	dashboardURL = strings.TrimSuffix(cfg.Server.SiteURL, "/") + "/admin/enquiries"
}

// listingRef is a listing referenced by a submission. Persisted tells
// whether it can be used as a foreign key.
type listingRef struct {
	Listing   model.Listing
	Persisted bool
}

// apply links the enquiry to the listing.
func (r *listingRef) apply(e *model.Enquiry) {
	if r == nil {
		return
	}
	e.ListingSlug = r.Listing.Slug
	if r.Persisted {
		id := r.Listing.ID
		e.ListingID = &id
	}
}

func (r *listingRef) listing() *model.Listing {
	if r == nil {
		return nil
	}
	return &r.Listing
}

// lookupListing resolves listingID against the listings table, then against
// the catalog the public pages are served from. An id found in neither is
// a field error.
func lookupListing(listingID *uint) (*listingRef, []validation.FieldError, error) {
	if listingID == nil {
		return nil, nil, nil
	}

	var listing model.Listing
	result := database.GetDB().Where("id = ?", *listingID).Limit(1).Find(&listing)
	if result.Error != nil {
		return nil, nil, result.Error
	}
	if result.RowsAffected > 0 {
		return &listingRef{Listing: listing, Persisted: true}, nil, nil
	}

	if catalog.Default != nil {
		if l, ok := catalog.Default.ListingByID(*listingID); ok {
			return &listingRef{Listing: l}, nil, nil
		}
	}

	return nil, []validation.FieldError{{Field: "listingId", Message: "listingId does not match a listing"}}, nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// CreateEnquiry stores one enquiry per request. Resubmissions create
// duplicate rows.
func CreateEnquiry(c *fiber.Ctx) error {
	input := new(EnquiryInput)
	if err := c.BodyParser(input); err != nil {
		return bodyError(c, err)
	}
	input.normalize()

	if errs := validation.ValidateStruct(input); errs != nil {
		return validationFailed(c, errs)
	}

	listing, errs, err := lookupListing(input.ListingID)
	if err != nil {
		zap.L().Error("could not look up listing for enquiry", zap.Error(err))
		return submitFailed(c)
	}
	if errs != nil {
		return validationFailed(c, errs)
	}

	enquiry := model.Enquiry{
		Type:          model.EnquiryType(input.Type),
		Source:        model.SourceEnquiry,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Subject:       input.Subject,
		Message:       input.Message,
		PreferredDate: parseDate(input.PreferredDate),
	}
	listing.apply(&enquiry)

	if err := database.GetDB().Create(&enquiry).Error; err != nil {
		zap.L().Error("could not create enquiry", zap.Error(err))
		return submitFailed(c)
	}

	zap.L().Info("enquiry created",
		zap.String("id", enquiry.ID),
		zap.String("type", string(enquiry.Type)),
	)

	notifyEnquiry(enquiry, listing.listing())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"enquiryId": enquiry.ID,
	})
}

func notifyEnquiry(enquiry model.Enquiry, listing *model.Listing) {
	if email.GlobalEmailService == nil || officeEmail == "" {
		return
	}

	data := email.EnquiryNotificationData{
		EnquiryID: enquiry.ID,
		Type:      string(enquiry.Type),
		Source:    enquiry.Source,
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		Subject:   enquiry.Subject,
		Message:   enquiry.Message,
		AdminURL:  dashboardURL + "/" + enquiry.ID,
	}
	if enquiry.PreferredDate != nil {
		data.PreferredDate = enquiry.PreferredDate.Format(dateLayout)
	}
	if listing != nil {
		data.ListingTitle = listing.Title
	}

	go func() {
		if err := email.GlobalEmailService.SendEnquiryNotificationEmail(officeEmail, data); err != nil {
			zap.L().Warn("could not send enquiry notification email", zap.String("id", data.EnquiryID), zap.Error(err))
		}
	}()
}

func enquiryFilters(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, error) {
	var enquiryType model.EnquiryType
	if t := c.Query("type"); t != "" {
		enquiryType = model.EnquiryType(strings.ToUpper(t))
		if !model.ValidEnquiryType(enquiryType) {
			return nil, fmt.Errorf("invalid type value %q", t)
		}
	}

	var status model.EnquiryStatus
	if s := c.Query("status"); s != "" {
		status = model.EnquiryStatus(strings.ToUpper(s))
		if !model.ValidEnquiryStatus(status) {
			return nil, fmt.Errorf("invalid status value %q", s)
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		if enquiryType != "" {
			db = db.Where("type = ?", enquiryType)
		}
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}, nil
}

// ListEnquiries is the admin list: newest first, paginated, optionally
// filtered by type and status.
func ListEnquiries(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter, err := enquiryFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          err.Error(),
			"valid_types":    model.EnquiryTypes,
			"valid_statuses": model.EnquiryStatuses,
		})
	}

	db := database.GetDB()

	var total int64
	if err := db.Model(&model.Enquiry{}).Scopes(filter).Count(&total).Error; err != nil {
		zap.L().Error("could not count enquiries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch enquiries",
		})
	}

	enquiries := []model.Enquiry{}
	if err := db.Scopes(filter).
		Order("created_at desc").
		Order("id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enquiries).Error; err != nil {
		zap.L().Error("could not fetch enquiries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch enquiries",
		})
	}

	return c.JSON(fiber.Map{
		"enquiries": enquiries,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func GetEnquiry(c *fiber.Ctx) error {
	var enquiry model.Enquiry
	if err := database.GetDB().Preload("Listing").First(&enquiry, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Enquiry not found",
			})
		}
		zap.L().Error("could not fetch enquiry", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch enquiry",
		})
	}

	return c.JSON(enquiry)
}

func UpdateEnquiryStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var enquiry model.Enquiry
	if err := database.GetDB().First(&enquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Enquiry not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch enquiry",
		})
	}

	input := struct {
		Status string `json:"status"`
	}{}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	status := model.EnquiryStatus(strings.ToUpper(strings.TrimSpace(input.Status)))
	if !model.ValidEnquiryStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          "Invalid status value",
			"valid_statuses": model.EnquiryStatuses,
		})
	}

	if err := database.GetDB().Model(&enquiry).Update("status", status).Error; err != nil {
		zap.L().Error("could not update enquiry status", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update enquiry status",
		})
	}

	enquiry.Status = status
	if enquiry.ListingID != nil {
		var listing model.Listing
		result := database.GetDB().Where("id = ?", *enquiry.ListingID).Limit(1).Find(&listing)
		if result.Error != nil {
			zap.L().Warn("could not load enquiry listing", zap.String("id", id), zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			enquiry.Listing = &listing
		}
	}

	return c.JSON(fiber.Map{
		"message": "Enquiry status updated successfully",
		"enquiry": enquiry,
	})
}
