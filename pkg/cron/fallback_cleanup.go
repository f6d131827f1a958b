package cron

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"propsite_backend/pkg/sheets"
)

// InitFallbackCleanupCron deletes local submission files older than
// retentionDays. Only scheduled outside production, where the fallback
// writer is in use.
func InitFallbackCleanupCron(c *cron.Cron, schedule string, writer *sheets.FallbackWriter, retentionDays int) error {
	_, err := c.AddFunc(schedule, func() {
		pruneFallback(writer, retentionDays)
	})
	if err != nil {
		return err
	}

	zap.L().Info("fallback cleanup cron initialized",
		zap.String("schedule", schedule), zap.Int("retention_days", retentionDays))
	return nil
}

func pruneFallback(writer *sheets.FallbackWriter, retentionDays int) int {
	removed, err := writer.Prune(retentionDays)
	if err != nil {
		zap.L().Error("error pruning submission files", zap.Error(err))
	}
	if removed > 0 {
		zap.L().Info("pruned submission files", zap.Int("removed", removed))
	}
	return removed
}
