package seed

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"propsite_backend/internal/model"
)

// SeedListings inserts each listing whose slug is not yet in the table and
// returns how many were created. Fixture ids are kept so the in-memory
// catalog and the database agree. Existing rows are left untouched.
func SeedListings(db *gorm.DB, listings []model.Listing) (int, error) {
	created := 0
	for _, listing := range listings {
		listing := listing

		result := db.Where(model.Listing{Slug: listing.Slug}).FirstOrCreate(&listing)
		if result.Error != nil {
			zap.L().Error("error creating listing", zap.String("slug", listing.Slug), zap.Error(result.Error))
			return created, result.Error
		}
		if result.RowsAffected > 0 {
			created++
		}
	}

	if err := syncListingSequence(db); err != nil {
		zap.L().Error("error advancing listings id sequence", zap.Error(err))
		return created, err
	}

	zap.L().Info("listings seeded", zap.Int("created", created), zap.Int("total", len(listings)))
	return created, nil
}

// listingSequenceSQL moves the id sequence past the explicit fixture ids.
// Only postgres keeps a separate sequence; other dialects return "".
func listingSequenceSQL(dialect string) string {
	if dialect != "postgres" {
		return ""
	}
	return "SELECT setval(pg_get_serial_sequence('listings', 'id'), COALESCE(MAX(id), 1)) FROM listings"
}

func syncListingSequence(db *gorm.DB) error {
	query := listingSequenceSQL(db.Dialector.Name())
	if query == "" {
		return nil
	}
	return db.Exec(query).Error
}
