package api

import (
	"context"
	"time"

	"github.com/thenoetrevino/mytasks/internal/feature"
)

// EffectJSON is the wire form of a screen effect
type EffectJSON struct {
	Type    string    `json:"type"`
	Message string    `json:"message,omitempty"`
	Route   string    `json:"route,omitempty"`
	Task    *TaskJSON `json:"task,omitempty"`
}

// ToEffectJSON converts an effect to its wire form. A nil effect returns nil.
func ToEffectJSON(e feature.Effect) *EffectJSON {
	switch v := e.(type) {
	case nil:
		return nil
	case feature.ShowError:
		return &EffectJSON{Type: "show_error", Message: v.Message.Resolve()}
	case feature.ShowSuccess:
		return &EffectJSON{Type: "show_success", Message: v.Message.Resolve()}
	case feature.NavigateToRoute:
		return &EffectJSON{Type: "navigate", Route: v.Route.String()}
	case feature.NavigateToTaskDetails:
		task := ToTaskJSON(v.Task)
		return &EffectJSON{Type: "navigate_to_task_details", Task: &task}
	case feature.NavigateToUpdate:
		task := ToTaskJSON(v.Task)
		return &EffectJSON{Type: "navigate_to_update", Task: &task}
	case feature.ExitApp:
		return &EffectJSON{Type: "exit_app"}
	default:
		return &EffectJSON{Type: "unknown"}
	}
}

// awaitEffect blocks until a screen publishes an effect
func awaitEffect(ctx context.Context, effects <-chan feature.Effect, timeout time.Duration) (feature.Effect, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		select {
		case e, ok := <-effects:
			if !ok {
				return nil, context.Canceled
			}
			if e != nil {
				return e, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
