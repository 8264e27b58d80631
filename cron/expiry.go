package cron

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"courtside/config"
	"courtside/models"
	"courtside/services/tasks"
	"courtside/upstream"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the async worker that cancels pending bookings whose
// payment countdown ran out.
func InitExpiryWorker(api *upstream.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpireTask(api))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpireTask(api *upstream.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ExpiryHandler] payment window elapsed for booking %s, cancelling", p.BookingID)

		err := api.CancelExpired(ctx, p.BookingID)
		if err != nil {
			// The booking may have been paid or cancelled in the meantime; the
			// court API answers 404/409 for those and a retry would never succeed.
			if strings.Contains(err.Error(), "status 404") || strings.Contains(err.Error(), "status 409") {
				log.Printf("[ExpiryHandler] booking %s already settled: %v", p.BookingID, err)
				return nil
			}
			log.Printf("[ExpiryHandler] failed to cancel booking %s: %v", p.BookingID, err)
		}
		return err
	}
}
