package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskEnsurePriceSet = "pricing.ensure_price_set"

type EnsurePriceSetPayload struct {
	VariantID string `json:"variantId"`
}

func NewEnsurePriceSetTask(payload EnsurePriceSetPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEnsurePriceSet, data), nil
}

func ParseEnsurePriceSetPayload(task *asynq.Task) (EnsurePriceSetPayload, error) {
	var payload EnsurePriceSetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EnsurePriceSetPayload{}, err
	}
	return payload, nil
}
