package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/database"
)

// DashboardStats backs the admin dashboard summary.
type DashboardStats struct {
	TotalEnquiries int64        `json:"totalEnquiries"`
	NewEnquiries   int64        `json:"newEnquiries"`
	ByType         []GroupCount `json:"byType"`
	ByStatus       []GroupCount `json:"byStatus"`
	DailyStats     []DailyStat  `json:"dailyStats"`
	TopListings    []TopListing `json:"topListings"`
}

type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DailyStat struct {
	Date      string `json:"date"`
	Enquiries int64  `json:"enquiries"`
}

type TopListing struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Enquiries int64  `json:"enquiries" gorm:"column:enquiry_count"`
}

const statsDays = 7

func GetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()
	stats := DashboardStats{
		ByType:      []GroupCount{},
		ByStatus:    []GroupCount{},
		TopListings: []TopListing{},
	}

	if err := db.Model(&model.Enquiry{}).Count(&stats.TotalEnquiries).Error; err != nil {
		zap.L().Error("could not count enquiries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch stats",
		})
	}

	db.Model(&model.Enquiry{}).
		Where("status = ?", model.EnquiryStatusNew).
		Count(&stats.NewEnquiries)

	db.Model(&model.Enquiry{}).
		Select("type AS name, COUNT(*) AS count").
		Group("type").
		Order("count DESC").
		Scan(&stats.ByType)

	db.Model(&model.Enquiry{}).
		Select("status AS name, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&stats.ByStatus)

	// Listings with the most enquiries
	db.Table("listings").
		Select("listings.id, listings.slug, listings.title, COUNT(enquiries.id) AS enquiry_count").
		Joins("JOIN enquiries ON enquiries.listing_id = listings.id").
		Where("listings.deleted_at IS NULL").
		Group("listings.id, listings.slug, listings.title").
		Order("enquiry_count DESC").
		Limit(5).
		Scan(&stats.TopListings)

	// Last seven days, oldest first
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := statsDays - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		stat := DailyStat{Date: start.Format(dateLayout)}

		db.Model(&model.Enquiry{}).
			Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1)).
			Count(&stat.Enquiries)

		stats.DailyStats = append(stats.DailyStats, stat)
	}

	return c.JSON(stats)
}
