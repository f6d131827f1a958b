package controller

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/catalog"
	"propsite_backend/pkg/database"
	"propsite_backend/pkg/utils/cloudflare"
	"propsite_backend/pkg/utils/image"
	"propsite_backend/pkg/utils/validation"
)

const maxGalleryImages = 24

// ImageStore is the object store listing photos are uploaded to.
type ImageStore interface {
	UploadListingImage(ctx context.Context, listingSlug, ext, contentType string, body io.Reader) (cloudflare.UploadResult, error)
	DeleteImage(ctx context.Context, url string) error
	Owns(url string) bool
}

var imageStore ImageStore

func InitUploadController(store ImageStore) {
	imageStore = store
}

// UploadListingImage replaces the hero image of a listing, or appends to
// its gallery when ?gallery=true.
func UploadListingImage(c *fiber.Ctx) error {
	if imageStore == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image storage is not configured",
		})
	}

	listingID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	var listing model.Listing
	if err := database.GetDB().First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Listing not found",
			})
		}
		zap.L().Error("could not load listing", zap.Uint64("listing_id", listingID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load listing",
		})
	}

	gallery := c.QueryBool("gallery", false)
	if gallery && len(listing.Gallery) >= maxGalleryImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum gallery size reached (" + strconv.Itoa(maxGalleryImages) + ")",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validation.ErrFileRequired.Error(),
		})
	}
	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not process image",
		})
	}

	result, err := imageStore.UploadListingImage(c.UserContext(), listing.Slug, image.ExtWebP, contentType, buf)
	if err != nil {
		zap.L().Error("image upload failed", zap.String("slug", listing.Slug), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	previousHero := ""
	if gallery {
		listing.Gallery = append(listing.Gallery, result.URL)
	} else {
		previousHero = listing.HeroImageURL
		listing.HeroImageURL = result.URL
	}

	if err := database.GetDB().Save(&listing).Error; err != nil {
		zap.L().Error("could not save listing image", zap.Uint("listing_id", listing.ID), zap.Error(err))
		if delErr := imageStore.DeleteImage(c.UserContext(), result.URL); delErr != nil {
			zap.L().Warn("orphaned upload", zap.String("url", result.URL), zap.Error(delErr))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save image record",
		})
	}

	if previousHero != "" && imageStore.Owns(previousHero) {
		if err := imageStore.DeleteImage(c.UserContext(), previousHero); err != nil {
			zap.L().Warn("could not delete replaced hero image", zap.String("url", previousHero), zap.Error(err))
		}
	}

	if listing.Published {
		catalog.Default.UpsertListing(listing)
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"url":     result.URL,
		"listing": listing,
	})
}
