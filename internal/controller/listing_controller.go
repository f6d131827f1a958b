package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/catalog"
	"propsite_backend/pkg/database"
)

func badFilter(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid " + name + " filter",
	})
}

func listingFilter(c *fiber.Ctx) (catalog.ListingFilter, string) {
	f := catalog.ListingFilter{
		Type:   model.ListingType(c.Query("type")),
		Status: model.ListingStatus(c.Query("status")),
		Suburb: c.Query("suburb"),
	}
	if f.Type != "" && !model.ValidListingType(f.Type) {
		return f, "type"
	}
	if f.Status != "" && !model.ValidListingStatus(f.Status) {
		return f, "status"
	}

	if v := c.Query("minPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, "minPrice"
		}
		f.MinPrice = &n
	}
	if v := c.Query("maxPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, "maxPrice"
		}
		f.MaxPrice = &n
	}
	if v := c.Query("minBedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, "minBedrooms"
		}
		f.MinBedrooms = &n
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, "featured"
		}
		f.Featured = &b
	}
	return f, ""
}

// ListListings returns published listings matching the query filters.
func ListListings(c *fiber.Ctx) error {
	f, bad := listingFilter(c)
	if bad != "" {
		return badFilter(c, bad)
	}

	listings := catalog.Default.Listings(f)
	return c.JSON(fiber.Map{
		"listings": listings,
		"total":    len(listings),
	})
}

func GetListingBySlug(c *fiber.Ctx) error {
	listing, ok := catalog.Default.ListingBySlug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}
	return c.JSON(listing)
}

func ListSuburbs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"suburbs": catalog.Default.Suburbs(),
	})
}

// ListAllListings is the admin view straight from the database, drafts
// included.
func ListAllListings(c *fiber.Ctx) error {
	listings := []model.Listing{}
	if err := database.GetDB().Order("created_at desc").Find(&listings).Error; err != nil {
		zap.L().Error("could not fetch listings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch listings",
		})
	}
	return c.JSON(listings)
}
