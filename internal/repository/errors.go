package repository

import "errors"

// ErrNoRowsAffected is logged when an update or delete matched no task
var ErrNoRowsAffected = errors.New("no rows affected")
