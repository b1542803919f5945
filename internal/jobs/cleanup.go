package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stepupp/account-server-go/internal/service"
)

// CleanupJob periodically removes pending registrations whose
// confirmation window has passed.
type CleanupJob struct {
	registration *service.RegistrationService
	interval     time.Duration
	done         chan struct{}
}

func NewCleanupJob(registration *service.RegistrationService, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		registration: registration,
		interval:     interval,
		done:         make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.registration.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to purge expired pending registrations")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("purged expired pending registrations")
	}
}
