package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clearheadspace/config"
	"clearheadspace/models"
	"clearheadspace/services/notification"

	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in background.
func InitEmailWorker(notifier notification.Notifier) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"email":   5,
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeEmailSend, handleEmailTask(notifier))

	go func() {
		log.Println("[EmailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(notifier notification.Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Printf("[EmailWorker] invalid payload: %v", err)
			return err
		}

		if err := notifier.Send(ctx, payload); err != nil {
			log.Printf("[EmailWorker] failed to send %s email to %s: %v", payload.Kind, payload.To, err)
			return err
		}
		return nil
	}
}
