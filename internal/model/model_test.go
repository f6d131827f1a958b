package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propsite_backend/pkg/database/testdb"
)

func TestListingBeforeCreate_Slug(t *testing.T) {
	db := testdb.Open(t, &Listing{}, &Enquiry{})

	first := Listing{Title: "Two Bedroom Terrace", Suburb: "Richmond", Type: ListingTypeResidential, Status: ListingStatusAvailable}
	require.NoError(t, db.Create(&first).Error)
	assert.Equal(t, "two-bedroom-terrace", first.Slug)

	second := Listing{Title: "Two Bedroom Terrace", Suburb: "Fitzroy North", Type: ListingTypeResidential, Status: ListingStatusAvailable}
	require.NoError(t, db.Create(&second).Error)
	assert.Equal(t, "two-bedroom-terrace-fitzroy-north", second.Slug)

	explicit := Listing{Slug: "kept-as-is", Title: "Whatever", Type: ListingTypeCommercial, Status: ListingStatusLeased}
	require.NoError(t, db.Create(&explicit).Error)
	assert.Equal(t, "kept-as-is", explicit.Slug)
}

func TestEnquiryBeforeCreate_Defaults(t *testing.T) {
	db := testdb.Open(t, &Listing{}, &Enquiry{})

	e := Enquiry{Name: "Jo Smith", Email: "jo@x.com", Phone: "0412345678", Message: "Please call me back about my unit."}
	require.NoError(t, db.Create(&e).Error)

	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, EnquiryTypeGeneral, e.Type)
	assert.Equal(t, EnquiryStatusNew, e.Status)

	typed := Enquiry{Type: EnquiryTypeInspection, Status: EnquiryStatusRead, Name: "Sam", Email: "s@x.com", Phone: "0400000000", Message: "Inspection please, any weekday works."}
	require.NoError(t, db.Create(&typed).Error)
	assert.Equal(t, EnquiryTypeInspection, typed.Type)
	assert.Equal(t, EnquiryStatusRead, typed.Status)
	assert.NotEqual(t, e.ID, typed.ID)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidListingType("ancillary"))
	assert.False(t, ValidListingType("Residential"))
	assert.True(t, ValidListingStatus("under-offer"))
	assert.False(t, ValidListingStatus("pending"))
	assert.True(t, ValidEnquiryType(EnquiryTypeValuation))
	assert.False(t, ValidEnquiryType("valuation"))
	assert.True(t, ValidEnquiryStatus(EnquiryStatusClosed))
	assert.False(t, ValidEnquiryStatus("ARCHIVED"))
}
