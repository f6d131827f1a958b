package cron

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/email"
)

const digestLatestLimit = 10

type DigestSender interface {
	SendDailyEnquiryDigest(officeEmail string, data email.EnquiryDigestData) error
}

type enquiryDigestJob struct {
	db          func() *gorm.DB
	sender      DigestSender
	officeEmail string

	mu      sync.Mutex
	lastRun time.Time
}

func InitEnquiryDigestCron(c *cron.Cron, schedule string, db func() *gorm.DB, sender DigestSender, officeEmail string) error {
	job := &enquiryDigestJob{db: db, sender: sender, officeEmail: officeEmail}

	_, err := c.AddFunc(schedule, func() {
		job.run(time.Now())
	})
	if err != nil {
		return err
	}

	zap.L().Info("enquiry digest cron initialized", zap.String("schedule", schedule))
	return nil
}

// run sends at most one digest per 23h.
func (j *enquiryDigestJob) run(now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.lastRun.IsZero() && now.Sub(j.lastRun) < 23*time.Hour {
		zap.L().Info("enquiry digest already sent today, skipping")
		return
	}

	data, err := BuildEnquiryDigest(j.db(), now)
	if err != nil {
		zap.L().Error("error building enquiry digest", zap.Error(err))
		return
	}
	j.lastRun = now

	if data.Total == 0 {
		zap.L().Info("no enquiries in the last 24h, digest not sent")
		return
	}
	if j.sender == nil || j.officeEmail == "" {
		zap.L().Warn("enquiry digest skipped: email not configured", zap.Int64("total", data.Total))
		return
	}

	if err := j.sender.SendDailyEnquiryDigest(j.officeEmail, data); err != nil {
		zap.L().Error("error sending enquiry digest", zap.Error(err))
		return
	}
	zap.L().Info("enquiry digest sent", zap.Int64("total", data.Total))
}

// BuildEnquiryDigest summarises enquiries created in the 24h before now.
func BuildEnquiryDigest(db *gorm.DB, now time.Time) (email.EnquiryDigestData, error) {
	since := now.Add(-24 * time.Hour)
	data := email.EnquiryDigestData{
		Date:   now,
		ByType: map[string]int64{},
	}

	var counts []struct {
		Type  string
		Count int64
	}
	err := db.Model(&model.Enquiry{}).
		Select("type, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", since, now).
		Group("type").
		Scan(&counts).Error
	if err != nil {
		return data, err
	}
	for _, row := range counts {
		data.ByType[row.Type] = row.Count
		data.Total += row.Count
	}
	if data.Total == 0 {
		return data, nil
	}

	var latest []model.Enquiry
	err = db.Where("created_at >= ? AND created_at < ?", since, now).
		Order("created_at desc").
		Limit(digestLatestLimit).
		Find(&latest).Error
	if err != nil {
		return data, err
	}
	for _, e := range latest {
		data.Latest = append(data.Latest, email.DigestEntry{
			Name:      e.Name,
			Type:      string(e.Type),
			CreatedAt: e.CreatedAt,
		})
	}

	return data, nil
}
