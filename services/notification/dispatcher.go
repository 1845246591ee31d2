package notification

import (
	"encoding/json"
	"fmt"

	"clearheadspace/config"
	"clearheadspace/models"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// NewEmailTask wraps an email payload into an asynq task.
func NewEmailTask(payload models.EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email payload: %w", err)
	}
	return asynq.NewTask(TypeEmailSend, b), nil
}

// AsynqDispatcher enqueues emails on the Redis-backed task queue for the
// async worker to deliver.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher creates a Dispatcher backed by the configured Redis queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) Dispatch(payload models.EmailPayload) error {
	task, err := NewEmailTask(payload)
	if err != nil {
		return err
	}
	if _, err := d.client.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("email")); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
