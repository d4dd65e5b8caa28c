package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/mytasks/internal/feature/home"
)

// HomeStateJSON is the wire form of a home screen snapshot
type HomeStateJSON struct {
	IsLoading     bool        `json:"is_loading"`
	IsFabExpanded bool        `json:"is_fab_expanded"`
	OpenDialog    string      `json:"open_dialog"`
	Tasks         []TaskJSON  `json:"tasks"`
	Effect        *EffectJSON `json:"effect,omitempty"`
}

// ToHomeStateJSON converts a home snapshot to its wire form
func ToHomeStateJSON(s home.State) HomeStateJSON {
	dialog := "none"
	if s.OpenDialog == home.DialogExit {
		dialog = "exit"
	}
	return HomeStateJSON{
		IsLoading:     s.IsLoading,
		IsFabExpanded: s.IsFabExpanded,
		OpenDialog:    dialog,
		Tasks:         toTaskList(s.Tasks),
		Effect:        ToEffectJSON(s.Effect),
	}
}

// HomeStream serves the home screen as server-sent events. Every snapshot is
// sent as a "state" event. A pending effect is also sent once as an "effect"
// event and then consumed.
func (h *Handlers) HomeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	vm := h.app.NewHome()
	defer vm.Dispose()

	ctx := r.Context()
	states := vm.Subscribe(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-states:
			if !ok {
				return
			}
			if err := writeEvent(w, "state", ToHomeStateJSON(s)); err != nil {
				slog.Debug("api: home stream closed", "error", err)
				return
			}
			if s.Effect != nil {
				if err := writeEvent(w, "effect", ToEffectJSON(s.Effect)); err != nil {
					return
				}
				vm.OnEvent(home.ConsumeEffect{})
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
	return err
}
