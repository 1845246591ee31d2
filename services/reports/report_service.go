package reports

import (
	"fmt"
	"time"

	analyticsRepo "clearheadspace/database/repository/analytics"
	bookingRepo "clearheadspace/database/repository/booking"
	"clearheadspace/models"
	"clearheadspace/utils"

	"go.uber.org/zap"
)

// Service aggregates booking activity into weekly reports.
type Service struct {
	BookingRepo   bookingRepo.BookingRepository
	AnalyticsRepo analyticsRepo.AnalyticsRepository
}

func NewService(br bookingRepo.BookingRepository, ar analyticsRepo.AnalyticsRepository) *Service {
	return &Service{BookingRepo: br, AnalyticsRepo: ar}
}

// GenerateWeekly summarizes the bookings created in the last seven days and
// stores the result.
func (s *Service) GenerateWeekly() (*models.AnalyticsReport, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -7)

	bookings, err := s.BookingRepo.CreatedSince(since)
	if err != nil {
		return nil, err
	}

	report := &models.AnalyticsReport{
		Week:        fmt.Sprintf("%s / %s", since.Format("2006-01-02"), now.Format("2006-01-02")),
		GeneratedAt: now,
	}
	for _, b := range bookings {
		report.TotalBookings++
		if b.Status == models.BookingStatusCompleted {
			report.CompletedBookings++
			report.TotalRevenue += b.Amount
		}
	}
	if report.CompletedBookings > 0 {
		report.AverageSessionValue = report.TotalRevenue / float64(report.CompletedBookings)
	}

	if err := s.AnalyticsRepo.Insert(report); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("weekly report generated",
		zap.String("week", report.Week),
		zap.Int("totalBookings", report.TotalBookings),
		zap.Int("completed", report.CompletedBookings),
		zap.Float64("revenue", report.TotalRevenue))
	return report, nil
}

// Recent returns the latest stored reports, newest first.
func (s *Service) Recent(limit int64) ([]models.AnalyticsReport, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.AnalyticsRepo.GetRecent(limit)
}
