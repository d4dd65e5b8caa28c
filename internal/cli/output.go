package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/uitext"
)

// DescriptionWidth is the column at which task descriptions wrap
const DescriptionWidth = 72

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and ErrOut default to os.Stdout and os.Stderr
	Out    io.Writer
	ErrOut io.Writer
}

// NewFormatter reads the --json and --quiet flags of cmd and writes to its
// configured output streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// AddOutputFlags registers the agent-friendly flags every command carries
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// TaskJSON is the wire form of a task in JSON output
type TaskJSON struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Completed   bool      `json:"completed"`
}

// ToTaskJSON converts a task to its wire form
func ToTaskJSON(t models.Task) TaskJSON {
	return TaskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
	}
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut == nil {
		return os.Stderr
	}
	return f.ErrOut
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		switch v := data.(type) {
		case []models.Task:
			for _, t := range v {
				if _, err := fmt.Fprintf(f.out(), "%d\n", t.ID); err != nil {
					return err
				}
			}
			return nil
		case interface{ GetID() int }:
			_, err := fmt.Fprintf(f.out(), "%d\n", v.GetID())
			return err
		}
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    wire(data),
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

func wire(data any) any {
	switch v := data.(type) {
	case models.Task:
		return ToTaskJSON(v)
	case []models.Task:
		out := make([]TaskJSON, len(v))
		for i, t := range v {
			out[i] = ToTaskJSON(t)
		}
		return out
	default:
		return data
	}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	w := f.out()
	switch v := data.(type) {
	case []models.Task:
		if len(v) == 0 {
			_, err := fmt.Fprintln(w, "No tasks")
			return err
		}
		for _, t := range v {
			if _, err := fmt.Fprintln(w, TaskLine(t)); err != nil {
				return err
			}
		}
		return nil
	case models.Task:
		_, err := fmt.Fprint(w, TaskDetail(v))
		return err
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		_, err := fmt.Fprintf(w, "%+v\n", data)
		return err
	}
}

// TaskLine renders a task as a single list row
func TaskLine(task models.Task) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %4d  %s  (due %s)", mark, task.ID, task.Title, task.DueDate.Format(time.DateOnly))
}

// TaskDetail renders every field of a task with the description wrapped
func TaskDetail(task models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:        %d\n", task.ID)
	fmt.Fprintf(&b, "Title:     %s\n", task.Title)
	fmt.Fprintf(&b, "Due:       %s\n", task.DueDate.Format(time.DateTime))
	fmt.Fprintf(&b, "Completed: %t\n", task.Completed)
	if desc := strings.TrimSpace(task.Description); desc != "" {
		b.WriteString("Description:\n")
		b.WriteString(indent.String(wordwrap.String(desc, DescriptionWidth), 2))
		b.WriteString("\n")
	}
	return b.String()
}

// Fail reports err through f and returns it carrying exitCode
func (f *OutputFormatter) Fail(exitCode int, code string, err error, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		slog.Error("Error formatting error message", "error", fmtErr)
	}
	return WithExitCode(exitCode, err)
}

// FailData reports a repository failure with its user-facing message
func (f *OutputFormatter) FailData(err models.DataError) error {
	code := "DATA_ERROR"
	if s, ok := err.(fmt.Stringer); ok {
		code = s.String()
	}
	if fmtErr := f.Error(code, uitext.FromDataError(err).Resolve()); fmtErr != nil {
		slog.Error("Error formatting error message", "error", fmtErr)
	}
	return WithExitCode(ExitCodeForDataError(err), err)
}
