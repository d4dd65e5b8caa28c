// Package uitext maps message keys to the user-facing strings shown by the UI
package uitext

import (
	"fmt"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// Message keys
const (
	KeyGeneric                  = "error_generic"
	KeyDiskFull                 = "error_disk_full"
	KeyRequestTimeout           = "error_request_timeout"
	KeyTooManyRequests          = "error_too_many_requests"
	KeyNoInternet               = "error_internet_connection"
	KeyServer                   = "error_server"
	KeySerialization            = "error_serialization"
	KeyInvalidCredentials       = "error_invalid_credentials"
	KeyEmailNotVerified         = "error_email_not_verified"
	KeyUserNotAuthorized        = "error_user_not_authorized"
	KeyUserCollision            = "error_user_collision"
	KeyTitleCannotBeEmpty       = "title_cannot_be_empty"
	KeyDescriptionCannotBeEmpty = "description_cannot_be_empty"
	KeyTaskSaved                = "task_saved"
	KeyTaskDeleted              = "task_deleted"
)

var english = map[string]string{
	KeyGeneric:                  "Something went wrong, please try again",
	KeyDiskFull:                 "The device storage is full",
	KeyRequestTimeout:           "The request timed out",
	KeyTooManyRequests:          "Too many requests, slow down",
	KeyNoInternet:               "No internet connection",
	KeyServer:                   "Server error",
	KeySerialization:            "Could not read the server response",
	KeyInvalidCredentials:       "Invalid credentials",
	KeyEmailNotVerified:         "Email address is not verified",
	KeyUserNotAuthorized:        "You are not authorized to do that",
	KeyUserCollision:            "An account already exists for that user",
	KeyTitleCannotBeEmpty:       "Title cannot be empty",
	KeyDescriptionCannotBeEmpty: "Description cannot be empty",
	KeyTaskSaved:                "Task saved",
	KeyTaskDeleted:              "Task deleted",
}

// Text is a message key with an optional detail appended after a colon.
// It stays comparable so effects carrying a Text can be compared by value.
type Text struct {
	Key  string
	Args string
}

// New returns the Text for key
func New(key string) Text {
	return Text{Key: key}
}

// Resolve renders the English string for t. Unknown keys render as the key itself.
func (t Text) Resolve() string {
	s, ok := english[t.Key]
	if !ok {
		s = t.Key
	}
	if t.Args != "" {
		return fmt.Sprintf("%s: %s", s, t.Args)
	}
	return s
}

// String implements fmt.Stringer.
func (t Text) String() string {
	return t.Resolve()
}

// FromDataError maps a repository error to the message shown to the user
func FromDataError(err models.DataError) Text {
	switch e := err.(type) {
	case models.LocalError:
		if e == models.DiskFull {
			return New(KeyDiskFull)
		}
		return New(KeyGeneric)
	case models.RemoteError:
		switch e {
		case models.RequestTimeout:
			return New(KeyRequestTimeout)
		case models.TooManyRequests:
			return New(KeyTooManyRequests)
		case models.NoInternet:
			return New(KeyNoInternet)
		case models.Server:
			return New(KeyServer)
		case models.Serialization:
			return New(KeySerialization)
		case models.InvalidCredentials:
			return New(KeyInvalidCredentials)
		case models.EmailNotVerified:
			return New(KeyEmailNotVerified)
		case models.AccessTokenExpired, models.UserNotAuthorized:
			return New(KeyUserNotAuthorized)
		case models.UserCollision:
			return New(KeyUserCollision)
		}
	}
	return New(KeyGeneric)
}
