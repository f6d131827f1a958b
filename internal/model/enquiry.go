package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnquiryType string

const (
	EnquiryTypeGeneral    EnquiryType = "GENERAL"
	EnquiryTypeValuation  EnquiryType = "VALUATION"
	EnquiryTypeInspection EnquiryType = "INSPECTION"
)

var EnquiryTypes = []EnquiryType{EnquiryTypeGeneral, EnquiryTypeValuation, EnquiryTypeInspection}

type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "NEW"
	EnquiryStatusRead      EnquiryStatus = "READ"
	EnquiryStatusContacted EnquiryStatus = "CONTACTED"
	EnquiryStatusClosed    EnquiryStatus = "CLOSED"
)

var EnquiryStatuses = []EnquiryStatus{
	EnquiryStatusNew,
	EnquiryStatusRead,
	EnquiryStatusContacted,
	EnquiryStatusClosed,
}

// Form the enquiry was submitted through.
const (
	SourceEnquiry    = "enquiry"
	SourceContact    = "contact"
	SourceValuation  = "valuation"
	SourceInspection = "inspection"
	SourceBooking    = "booking"
)

func ValidEnquiryType(t EnquiryType) bool {
	for _, v := range EnquiryTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidEnquiryStatus(s EnquiryStatus) bool {
	for _, v := range EnquiryStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Enquiry struct {
	ID            string        `json:"id" gorm:"primaryKey;size:36"`
	Type          EnquiryType   `json:"type" gorm:"size:20;index;not null"`
	Status        EnquiryStatus `json:"status" gorm:"size:20;index;not null"`
	Source        string        `json:"source" gorm:"size:20"`
	Name          string        `json:"name" gorm:"not null"`
	Email         string        `json:"email" gorm:"not null;index"`
	Phone         string        `json:"phone" gorm:"not null"`
	Subject       string        `json:"subject"`
	Message       string        `json:"message" gorm:"type:text;not null"`
	PreferredDate *time.Time    `json:"preferredDate"`
	// ListingID is set only when the listing exists in the listings table.
	// ListingSlug is kept either way, so enquiries made against the built-in
	// catalog still name their listing.
	ListingID     *uint         `json:"listingId" gorm:"index"`
	ListingSlug   string        `json:"listingSlug,omitempty" gorm:"size:160"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:SET NULL"`
}

func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Type == "" {
		e.Type = EnquiryTypeGeneral
	}
	if e.Status == "" {
		e.Status = EnquiryStatusNew
	}
	return nil
}
