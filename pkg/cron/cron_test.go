package cron

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/database/testdb"
	"propsite_backend/pkg/email"
	"propsite_backend/pkg/sheets"
)

type fakeSender struct {
	calls []email.EnquiryDigestData
	to    []string
	err   error
}

func (f *fakeSender) SendDailyEnquiryDigest(officeEmail string, data email.EnquiryDigestData) error {
	f.to = append(f.to, officeEmail)
	f.calls = append(f.calls, data)
	return f.err
}

func seedEnquiries(t *testing.T, db *gorm.DB, now time.Time) {
	rows := []model.Enquiry{
		{Type: model.EnquiryTypeValuation, Name: "Jo Smith", CreatedAt: now.Add(-2 * time.Hour)},
		{Type: model.EnquiryTypeValuation, Name: "Sam Lee", CreatedAt: now.Add(-5 * time.Hour)},
		{Type: model.EnquiryTypeGeneral, Name: "Alex Wu", CreatedAt: now.Add(-20 * time.Hour)},
		{Type: model.EnquiryTypeInspection, Name: "Old Timer", CreatedAt: now.Add(-30 * time.Hour)},
	}
	for i := range rows {
		rows[i].Email = "x@example.com"
		rows[i].Phone = "0400000000"
		rows[i].Message = "Please get in touch about my property."
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestBuildEnquiryDigest(t *testing.T) {
	db := testdb.Open(t, &model.Listing{}, &model.Enquiry{})
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	seedEnquiries(t, db, now)

	data, err := BuildEnquiryDigest(db, now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), data.Total)
	assert.Equal(t, map[string]int64{"VALUATION": 2, "GENERAL": 1}, data.ByType)
	require.Len(t, data.Latest, 3)
	assert.Equal(t, "Jo Smith", data.Latest[0].Name)
	assert.Equal(t, "Alex Wu", data.Latest[2].Name)
}

func TestEnquiryDigestJob_SendsOncePerDay(t *testing.T) {
	db := testdb.Open(t, &model.Listing{}, &model.Enquiry{})
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	seedEnquiries(t, db, now)

	sender := &fakeSender{}
	job := &enquiryDigestJob{
		db:          func() *gorm.DB { return db },
		sender:      sender,
		officeEmail: "office@example.com",
	}

	job.run(now)
	job.run(now.Add(time.Hour))

	require.Len(t, sender.calls, 1)
	assert.Equal(t, []string{"office@example.com"}, sender.to)
	assert.Equal(t, int64(3), sender.calls[0].Total)
}

func TestEnquiryDigestJob_NothingToSend(t *testing.T) {
	db := testdb.Open(t, &model.Listing{}, &model.Enquiry{})

	sender := &fakeSender{err: errors.New("should not be called")}
	job := &enquiryDigestJob{
		db:          func() *gorm.DB { return db },
		sender:      sender,
		officeEmail: "office@example.com",
	}
	job.run(time.Now())

	assert.Empty(t, sender.calls)
}

func TestInitEnquiryDigestCron_BadSchedule(t *testing.T) {
	c := New()
	err := InitEnquiryDigestCron(c, "not a schedule", nil, nil, "")
	assert.Error(t, err)
	assert.Empty(t, c.Entries())
}

func TestPruneFallback(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "submissions-2000-01-01.jsonl")
	today := filepath.Join(dir, "submissions-"+time.Now().Format("2006-01-02")+".jsonl")
	require.NoError(t, os.WriteFile(old, []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(today, []byte("{}\n"), 0o644))

	removed := pruneFallback(sheets.NewFallbackWriter(dir), 14)

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, today)

	c := New()
	require.NoError(t, InitFallbackCleanupCron(c, "0 3 * * *", sheets.NewFallbackWriter(dir), 14))
	assert.Len(t, c.Entries(), 1)
}
