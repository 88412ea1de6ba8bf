package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskMissionCreated is the task type announcing a new mission.
const TaskMissionCreated = "mission:created"

// MissionCreatedPayload is the JSON payload of a TaskMissionCreated task.
type MissionCreatedPayload struct {
	MissionID     int64  `json:"mission_id"`
	MissionName   string `json:"mission_name"`
	ScientistName string `json:"scientist_name"`
	PlanetName    string `json:"planet_name"`
}

// NewMissionCreatedTask builds the task, retried up to 3 times on the
// default queue with a 30s timeout.
func NewMissionCreatedTask(payload MissionCreatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMissionCreated,
		data,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueMissionCreated queues the notification for a committed mission.
func (j *JobService) EnqueueMissionCreated(ctx context.Context, payload MissionCreatedPayload) error {
	task, err := NewMissionCreatedTask(payload)
	if err != nil {
		return fmt.Errorf("building mission task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing mission task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("mission_id", payload.MissionID).
		Msg("enqueued mission notification")

	return nil
}
