package tasks

import (
	"context"
	"encoding/json"
	"time"

	"courtside/models"

	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

// NewBookingExpireTask builds the deferred task that cancels a pending
// booking at its payment deadline.
func NewBookingExpireTask(payload models.ExpirePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(payload.Deadline)}

	return task, opts, nil
}

// Scheduler enqueues expiry tasks on the shared asynq client.
type Scheduler struct {
	Client *asynq.Client
}

func (s *Scheduler) ScheduleExpiry(ctx context.Context, bookingID string, deadline time.Time) error {
	task, opts, err := NewBookingExpireTask(models.ExpirePayload{
		BookingID: bookingID,
		Deadline:  deadline,
	})
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
