package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmailService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewEmailService(Options{APIKey: "re_test", APIURL: srv.URL, From: "Site <noreply@example.com>"})
	require.NoError(t, err)
	return s
}

func TestNewEmailService_RequiresKey(t *testing.T) {
	_, err := NewEmailService(Options{})
	assert.Error(t, err)
}

func TestSendEnquiryNotificationEmail(t *testing.T) {
	var got EmailData
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email_1"}`))
	})

	err := s.SendEnquiryNotificationEmail("office@example.com", EnquiryNotificationData{
		EnquiryID: "abc",
		Type:      "VALUATION",
		Source:    "enquiry",
		Name:      "Jo Smith",
		Email:     "jo@x.com",
		Phone:     "0412345678",
		Subject:   "Valuation request",
		Message:   "Please value my <unit>.",
	})
	require.NoError(t, err)

	assert.Equal(t, "office@example.com", got.To)
	assert.Equal(t, "jo@x.com", got.ReplyTo)
	assert.Equal(t, "New VALUATION enquiry from Jo Smith: Valuation request", got.Subject)
	assert.Contains(t, got.Html, "Jo Smith")
	assert.Contains(t, got.Html, "Please value my &lt;unit&gt;.")
}

func TestSendBookingAndDigest(t *testing.T) {
	calls := 0
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, s.SendBookingNotificationEmail("office@example.com", BookingNotificationData{
		BookingType: "Inspection", Name: "Sam", Email: "sam@x.com", PreferredDate: "2026-11-02",
	}))
	require.NoError(t, s.SendDailyEnquiryDigest("office@example.com", EnquiryDigestData{
		Date:   time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		Total:  3,
		ByType: map[string]int64{"GENERAL": 2, "VALUATION": 1},
		Latest: []DigestEntry{{Name: "Sam", Type: "GENERAL", CreatedAt: time.Now()}},
	}))
	assert.Equal(t, 2, calls)
}

func TestSendTemplateEmail_APIError(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	})

	err := s.SendEnquiryNotificationEmail("office@example.com", EnquiryNotificationData{Name: "Jo", Type: "GENERAL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}
