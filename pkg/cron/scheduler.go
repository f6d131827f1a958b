package cron

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// New returns a scheduler that logs through zap and recovers panicking jobs.
func New() *cron.Cron {
	logger := cron.PrintfLogger(zap.NewStdLog(zap.L().Named("cron")))
	return cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger)))
}
