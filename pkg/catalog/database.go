package catalog

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"propsite_backend/internal/model"
)

// LoadListingsFromDB replaces the in-memory listings with the published
// database rows. It leaves the fixtures in place when the table is empty,
// so an unseeded database still serves the site.
func (s *Store) LoadListingsFromDB(db *gorm.DB) (int, error) {
	var listings []model.Listing
	if err := db.Where("published = ?", true).Order("id asc").Find(&listings).Error; err != nil {
		return 0, fmt.Errorf("catalog: load listings: %w", err)
	}

	if len(listings) == 0 {
		zap.L().Info("no published listings in database, serving fixtures")
		return 0, nil
	}

	s.ReplaceListings(listings)
	return len(listings), nil
}
