package reminder

import (
	"context"
	"sync"
	"time"

	bookingRepo "clearheadspace/database/repository/booking"
	"clearheadspace/services/notification"
	"clearheadspace/utils"

	"go.uber.org/zap"
)

// Service sends day-before reminders for confirmed bookings. It is driven by
// the daily scheduler tick.
type Service struct {
	BookingRepo bookingRepo.BookingRepository
	Notifier    notification.Notifier
}

func NewService(br bookingRepo.BookingRepository, n notification.Notifier) *Service {
	return &Service{BookingRepo: br, Notifier: n}
}

// Run processes one reminder sweep: every confirmed booking dated tomorrow
// whose reminder has not gone out yet. Sends fan out concurrently and fail
// independently; the guard flag is flipped only after a successful send, so a
// failed booking stays eligible for the next sweep.
func (s *Service) Run(ctx context.Context) (sent, failed int, err error) {
	logger := utils.GetLogger()
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	due, err := s.BookingRepo.DueForReminder(tomorrow)
	if err != nil {
		return 0, 0, err
	}
	if len(due) == 0 {
		logger.Info("reminder sweep: nothing due", zap.String("date", tomorrow))
		return 0, 0, nil
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, b := range due {
		b := b
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Notifier.Send(ctx, notification.ReminderPayload(&b)); err != nil {
				logger.Warn("reminder send failed",
					zap.String("bookingId", b.ID),
					zap.String("to", b.UserEmail),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			if err := s.BookingRepo.MarkReminderSent(b.ID); err != nil {
				// The mail went out; a stale flag means at worst one
				// duplicate reminder tomorrow.
				logger.Warn("failed to flip reminder flag",
					zap.String("bookingId", b.ID), zap.Error(err))
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}
	wg.Wait()

	logger.Info("reminder sweep finished",
		zap.String("date", tomorrow),
		zap.Int("sent", sent),
		zap.Int("failed", failed))
	return sent, failed, nil
}
