// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const DefaultAPIURL = "https://api.resend.com/emails"

type EmailService struct {
	apiKey    string
	apiURL    string
	from      string
	templates *template.Template
	client    *http.Client
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Template data structures
type EnquiryNotificationData struct {
	EnquiryID     string
	Type          string
	Source        string
	Name          string
	Email         string
	Phone         string
	Subject       string
	Message       string
	PreferredDate string
	ListingTitle  string
	AdminURL      string
}

type BookingNotificationData struct {
	EnquiryID       string
	BookingType     string
	Name            string
	Email           string
	Phone           string
	PreferredDate   string
	PreferredTime   string
	PropertyAddress string
	Notes           string
	AdminURL        string
}

type EnquiryDigestData struct {
	Date   time.Time
	Total  int64
	ByType map[string]int64
	Latest []DigestEntry
}

type DigestEntry struct {
	Name      string
	Type      string
	CreatedAt time.Time
}

type Options struct {
	APIKey string
	APIURL string
	From   string
	Client *http.Client
}

func NewEmailService(opts Options) (*EmailService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &EmailService{
		apiKey:    opts.APIKey,
		apiURL:    apiURL,
		from:      opts.From,
		templates: templates,
		client:    client,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, replyTo, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
		ReplyTo: replyTo,
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	zap.L().Debug("email sent", zap.String("template", templateName), zap.Int("status", resp.StatusCode))
	return nil
}

// Email sending methods
func (s *EmailService) SendEnquiryNotificationEmail(officeEmail string, data EnquiryNotificationData) error {
	subject := fmt.Sprintf("New %s enquiry from %s", data.Type, data.Name)
	if data.Subject != "" {
		subject = fmt.Sprintf("%s: %s", subject, data.Subject)
	}
	return s.sendTemplateEmail(officeEmail, data.Email, subject, "enquiry_notification.html", data)
}

func (s *EmailService) SendBookingNotificationEmail(officeEmail string, data BookingNotificationData) error {
	subject := fmt.Sprintf("Booking request (%s) from %s for %s", data.BookingType, data.Name, data.PreferredDate)
	return s.sendTemplateEmail(officeEmail, data.Email, subject, "booking_notification.html", data)
}

func (s *EmailService) SendDailyEnquiryDigest(officeEmail string, data EnquiryDigestData) error {
	subject := fmt.Sprintf("%d new enquiries on %s", data.Total, data.Date.Format("Mon 2 Jan"))
	return s.sendTemplateEmail(officeEmail, "", subject, "enquiry_digest.html", data)
}
