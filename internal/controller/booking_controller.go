package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/database"
	"propsite_backend/pkg/email"
	"propsite_backend/pkg/utils/validation"
)

type BookingInput struct {
	BookingType     string `json:"bookingType" validate:"required,oneof=inspection appraisal consultation maintenance"`
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10,max=20"`
	PreferredDate   string `json:"preferredDate" validate:"required,datetime=2006-01-02"`
	PreferredTime   string `json:"preferredTime" validate:"omitempty,oneof=morning afternoon evening"`
	PropertyAddress string `json:"propertyAddress" validate:"omitempty,max=300"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
	ListingID       *uint  `json:"listingId" validate:"omitempty,min=1"`
}

func (in *BookingInput) normalize() {
	in.BookingType = strings.ToLower(strings.TrimSpace(in.BookingType))
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.PreferredDate = strings.TrimSpace(in.PreferredDate)
	in.PreferredTime = strings.ToLower(strings.TrimSpace(in.PreferredTime))
	in.PropertyAddress = strings.TrimSpace(in.PropertyAddress)
	in.Notes = strings.TrimSpace(in.Notes)
}

func bookingLabel(bookingType string) string {
	if bookingType == "" {
		return ""
	}
	return strings.ToUpper(bookingType[:1]) + bookingType[1:]
}

// bookingMessage flattens the booking details into the enquiry message,
// since every booking is stored under the GENERAL enquiry type.
func bookingMessage(in *BookingInput, listing *model.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking type: %s\n", bookingLabel(in.BookingType))
	fmt.Fprintf(&b, "Preferred date: %s", in.PreferredDate)
	if in.PreferredTime != "" {
		fmt.Fprintf(&b, " (%s)", in.PreferredTime)
	}
	b.WriteString("\n")
	if listing != nil {
		fmt.Fprintf(&b, "Listing: %s (%s)\n", listing.Title, listing.Slug)
	}
	if in.PropertyAddress != "" {
		fmt.Fprintf(&b, "Property: %s\n", in.PropertyAddress)
	}
	if in.Notes != "" {
		fmt.Fprintf(&b, "Notes:\n%s\n", in.Notes)
	}
	return strings.TrimRight(b.String(), "\n")
}

func CreateBooking(c *fiber.Ctx) error {
	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return bodyError(c, err)
	}
	input.normalize()

	if errs := validation.ValidateStruct(input); errs != nil {
		return validationFailed(c, errs)
	}

	listing, errs, err := lookupListing(input.ListingID)
	if err != nil {
		zap.L().Error("could not look up listing for booking", zap.Error(err))
		return submitFailed(c)
	}
	if errs != nil {
		return validationFailed(c, errs)
	}

	enquiry := model.Enquiry{
		Type:          model.EnquiryTypeGeneral,
		Source:        model.SourceBooking,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Subject:       "Booking request: " + bookingLabel(input.BookingType),
		Message:       bookingMessage(input, listing.listing()),
		PreferredDate: parseDate(input.PreferredDate),
	}
	listing.apply(&enquiry)

	if err := database.GetDB().Create(&enquiry).Error; err != nil {
		zap.L().Error("could not create booking", zap.Error(err))
		return submitFailed(c)
	}

	zap.L().Info("booking created", zap.String("id", enquiry.ID), zap.String("bookingType", input.BookingType))

	notifyBooking(enquiry.ID, input)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"enquiryId": enquiry.ID,
	})
}

func notifyBooking(id string, in *BookingInput) {
	if email.GlobalEmailService == nil || officeEmail == "" {
		return
	}

	data := email.BookingNotificationData{
		EnquiryID:       id,
		BookingType:     bookingLabel(in.BookingType),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		PreferredDate:   in.PreferredDate,
		PreferredTime:   in.PreferredTime,
		PropertyAddress: in.PropertyAddress,
		Notes:           in.Notes,
		AdminURL:        dashboardURL + "/" + id,
	}

	go func() {
		if err := email.GlobalEmailService.SendBookingNotificationEmail(officeEmail, data); err != nil {
			zap.L().Warn("could not send booking notification email", zap.String("id", id), zap.Error(err))
		}
	}()
}
