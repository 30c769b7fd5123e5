package wfutils

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"
)

func MarshalJson(ctx workflow.Context, data any) ([]byte, error) {
	var res []byte
	err := workflow.SideEffect(ctx, func(ctx workflow.Context) any {
		bytes, err := json.Marshal(data)
		if err != nil {
			panic(err)
		}
		return bytes
	}).Get(&res)
	return res, err
}

func UnmarshalJson[T any](ctx workflow.Context, data []byte) (*T, error) {
	var res T
	err := workflow.SideEffect(ctx, func(ctx workflow.Context) any {
		var out T
		err := json.Unmarshal(data, &out)
		if err != nil {
			panic(err)
		}
		return out
	}).Get(&res)

	return &res, err
}

// UUIDString generates an id that stays stable across workflow replays.
func UUIDString(ctx workflow.Context) (string, error) {
	var id string
	err := workflow.SideEffect(ctx, func(ctx workflow.Context) any {
		return uuid.NewString()
	}).Get(&id)
	return id, err
}
