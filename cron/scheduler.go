package cron

import (
	"context"
	"log"

	"clearheadspace/config"
	"clearheadspace/services/reminder"
	"clearheadspace/services/reports"

	"github.com/robfig/cron/v3"
)

// InitScheduler wires the recurring jobs: the daily reminder sweep and the
// weekly analytics report. Returns the started scheduler so main can stop it
// on shutdown.
func InitScheduler(reminderSvc *reminder.Service, reportSvc *reports.Service) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.ReminderCronSpec, func() {
		if _, _, err := reminderSvc.Run(context.Background()); err != nil {
			log.Printf("[Scheduler] reminder sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("[Scheduler] invalid reminder cron spec: %v", err)
	}

	if _, err := c.AddFunc(config.AppConfig.ReportCronSpec, func() {
		if _, err := reportSvc.GenerateWeekly(); err != nil {
			log.Printf("[Scheduler] weekly report failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("[Scheduler] invalid report cron spec: %v", err)
	}

	c.Start()
	log.Println("[Scheduler] recurring jobs scheduled")
	return c
}
