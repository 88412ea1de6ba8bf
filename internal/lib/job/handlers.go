package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/cosmic-api/internal/config"
	"github.com/deppfellow/cosmic-api/internal/lib/email"
)

// InitHandlers builds the dependencies task handlers need. Without email
// settings, mission tasks are acknowledged and dropped.
func (j *JobService) InitHandlers(cfg *config.Config) {
	if !cfg.Integration.NotificationsEnabled() {
		j.logger.Info().Msg("mission notification emails disabled")
		return
	}
	j.mailer = email.NewClient(cfg, j.logger)
}

func (j *JobService) handleMissionCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p MissionCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal mission payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskMissionCreated).
		Int64("mission_id", p.MissionID).
		Logger()

	if j.mailer == nil {
		logger.Debug().Msg("no mailer configured, skipping mission notification")
		return nil
	}

	logger.Info().Str("to", j.notifyTo).Msg("processing mission notification")

	err := j.mailer.SendMissionCreatedEmail(j.notifyTo, email.MissionCreatedData{
		MissionName:   p.MissionName,
		ScientistName: p.ScientistName,
		PlanetName:    p.PlanetName,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send mission notification")
		return err
	}

	logger.Info().Msg("sent mission notification")
	return nil
}
