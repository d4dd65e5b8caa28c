// Package cli holds helpers for running cobra commands against a test app.
// It lives apart from testutil so that testutil stays importable by the app package.
package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/mytasks/internal/app"
	"github.com/thenoetrevino/mytasks/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// Cleanup is automatic via t.Cleanup().
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// EventPublisher is nil; event publishing is tested elsewhere
	appInstance := app.New(db)
	t.Cleanup(func() { _ = appInstance.Close() })

	return db, appInstance
}
