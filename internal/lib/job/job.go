// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client
//   - a server runs workers that process them (consumer) with asynq.Server
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/cosmic-api/internal/config"
	"github.com/deppfellow/cosmic-api/internal/lib/email"
)

// Mailer sends mission notification emails.
type Mailer interface {
	SendMissionCreatedEmail(to string, data email.MissionCreatedData) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// mailer is nil when no email provider is configured.
	mailer   Mailer
	notifyTo string
}

// NewJobService creates a JobService backed by the Redis address in cfg.
//
// Queue weights give "critical" tasks the larger share of the 10 workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client:   client,
		server:   server,
		logger:   logger,
		notifyTo: cfg.Integration.NotifyEmail,
	}
}

// Start registers task handlers and starts the worker server. It does not
// block; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskMissionCreated, j.handleMissionCreatedTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// Stop shuts down the workers, waiting for running tasks, and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
