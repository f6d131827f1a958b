package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListingType string

const (
	ListingTypeResidential ListingType = "residential"
	ListingTypeCommercial  ListingType = "commercial"
	ListingTypeAncillary   ListingType = "ancillary"
)

type ListingStatus string

const (
	ListingStatusAvailable  ListingStatus = "available"
	ListingStatusUnderOffer ListingStatus = "under-offer"
	ListingStatusSold       ListingStatus = "sold"
	ListingStatusLeased     ListingStatus = "leased"
	ListingStatusOffMarket  ListingStatus = "off-market"
)

func ValidListingType(t ListingType) bool {
	switch t {
	case ListingTypeResidential, ListingTypeCommercial, ListingTypeAncillary:
		return true
	}
	return false
}

func ValidListingStatus(s ListingStatus) bool {
	switch s {
	case ListingStatusAvailable, ListingStatusUnderOffer, ListingStatusSold,
		ListingStatusLeased, ListingStatusOffMarket:
		return true
	}
	return false
}

type Listing struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Slug        string        `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Title       string        `json:"title" gorm:"not null"`
	Summary     string        `json:"summary"`
	Description string        `json:"description" gorm:"type:text"`
	Type        ListingType   `json:"type" gorm:"size:20;index;not null"`
	Status      ListingStatus `json:"status" gorm:"size:20;index;not null"`
	Price       int64         `json:"price"`
	PriceLabel  string        `json:"priceLabel"`

	// Location
	Address   string  `json:"address"`
	Suburb    string  `json:"suburb" gorm:"index"`
	State     string  `json:"state" gorm:"size:3"`
	Postcode  string  `json:"postcode" gorm:"size:4"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Features
	Bedrooms     int `json:"bedrooms"`
	Bathrooms    int `json:"bathrooms"`
	CarSpaces    int `json:"carSpaces"`
	FloorAreaSqm int `json:"floorAreaSqm"`

	// Media
	HeroImageURL string                      `json:"heroImageUrl"`
	Gallery      datatypes.JSONSlice[string] `json:"gallery"`

	Featured  bool `json:"featured" gorm:"default:false"`
	Published bool `json:"published" gorm:"index;default:false"`

	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate derives the slug from the title when none was supplied.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.Slug == "" {
		base := slug.Make(l.Title)
		candidate := base

		var count int64
		tx.Model(&Listing{}).Where("slug = ?", candidate).Count(&count)
		if count > 0 && l.Suburb != "" {
			candidate = base + "-" + slug.Make(l.Suburb)
		}

		l.Slug = candidate
	}
	return nil
}
