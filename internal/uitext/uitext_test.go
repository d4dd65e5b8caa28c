package uitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/mytasks/internal/models"
)

func TestFromDataError(t *testing.T) {
	tests := []struct {
		name string
		err  models.DataError
		key  string
	}{
		{"disk full", models.DiskFull, KeyDiskFull},
		{"read error", models.DatabaseReadError, KeyGeneric},
		{"write error", models.DatabaseWriteError, KeyGeneric},
		{"local unknown", models.LocalUnknown, KeyGeneric},
		{"timeout", models.RequestTimeout, KeyRequestTimeout},
		{"token expired", models.AccessTokenExpired, KeyUserNotAuthorized},
		{"collision", models.UserCollision, KeyUserCollision},
		{"remote unknown", models.RemoteUnknown, KeyGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, FromDataError(tt.err).Key)
		})
	}
}

func TestText_Resolve(t *testing.T) {
	assert.Equal(t, "Title cannot be empty", New(KeyTitleCannotBeEmpty).Resolve())
	assert.Equal(t, "no_such_key", New("no_such_key").Resolve())
	assert.Equal(t, "Server error: 503", Text{Key: KeyServer, Args: "503"}.Resolve())
}

func TestText_ComparesByValue(t *testing.T) {
	var a, b any = Text{Key: KeyServer, Args: "503"}, Text{Key: KeyServer, Args: "503"}
	assert.True(t, a == b)
	assert.False(t, a == any(New(KeyServer)))
}
