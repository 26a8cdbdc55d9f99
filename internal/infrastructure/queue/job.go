package queue

import (
	"encoding/json"
	"fmt"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
)

func DeserializeJob(data string) (*repositories.CleanupJob, error) {
	var job repositories.CleanupJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("failed to deserialize job: %w", err)
	}
	if job.URL == "" {
		return nil, fmt.Errorf("failed to deserialize job: missing url")
	}
	return &job, nil
}

func SerializeJob(job repositories.CleanupJob) (string, error) {
	bytes, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to serialize job: %w", err)
	}
	return string(bytes), nil
}
