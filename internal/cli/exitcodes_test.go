package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/mytasks/internal/models"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitError},
		{"coded", WithExitCode(ExitValidation, errors.New("blank")), ExitValidation},
		{"wrapped coded", fmt.Errorf("run: %w", WithExitCode(ExitNotFound, errors.New("gone"))), ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitCodeForDataError(t *testing.T) {
	assert.Equal(t, ExitNotFound, ExitCodeForDataError(models.DatabaseWriteError))
	assert.Equal(t, ExitError, ExitCodeForDataError(models.DatabaseReadError))
	assert.Equal(t, ExitError, ExitCodeForDataError(models.NoInternet))
}

func TestReported(t *testing.T) {
	assert.False(t, Reported(errors.New("unknown command")))
	assert.True(t, Reported(WithExitCode(ExitUsage, errors.New("nothing to update"))))
}
