package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/app"
	clipkg "github.com/thenoetrevino/mytasks/internal/cli"
)

// Output holds what a command wrote to its streams
type Output struct {
	Stdout string
	Stderr string
}

// ExecuteCLICommand executes a CLI command with a test app instance
// and returns what it wrote to stdout
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	out, err := ExecuteCLICommandWithInput(t, testApp, cmd, args, "")
	return out.Stdout, err
}

// ExecuteCLICommandWithInput executes a CLI command with stdin set to input
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string, input string) (Output, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	var stdin io.Reader = strings.NewReader(input)

	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(stdin)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(clipkg.WithApp(context.Background(), testApp))
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}
