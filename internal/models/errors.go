package models

import "fmt"

// DataError is the closed set of failures a repository may report.
// Only LocalError and RemoteError implement it.
type DataError interface {
	error
	dataError()
}

// LocalError classifies failures of the on-device store
type LocalError int

const (
	DiskFull LocalError = iota
	LocalUnknown
	DatabaseReadError
	DatabaseWriteError
)

func (LocalError) dataError() {}

// String returns the error name
func (e LocalError) String() string {
	switch e {
	case DiskFull:
		return "DISK_FULL"
	case LocalUnknown:
		return "UNKNOWN"
	case DatabaseReadError:
		return "DATABASE_READ_ERROR"
	case DatabaseWriteError:
		return "DATABASE_WRITE_ERROR"
	default:
		return fmt.Sprintf("LocalError(%d)", int(e))
	}
}

// Error implements the error interface.
func (e LocalError) Error() string {
	return "local: " + e.String()
}

// RemoteError classifies failures of network-backed repositories.
// Nothing produces these yet.
type RemoteError int

const (
	RequestTimeout RemoteError = iota
	TooManyRequests
	NoInternet
	Server
	Serialization
	InvalidCredentials
	EmailNotVerified
	AccessTokenExpired
	UserNotAuthorized
	UserCollision
	RemoteUnknown
)

var remoteErrorNames = [...]string{
	RequestTimeout:     "REQUEST_TIMEOUT",
	TooManyRequests:    "TOO_MANY_REQUESTS",
	NoInternet:         "NO_INTERNET",
	Server:             "SERVER",
	Serialization:      "SERIALIZATION",
	InvalidCredentials: "INVALID_CREDENTIALS",
	EmailNotVerified:   "EMAIL_NOT_VERIFIED",
	AccessTokenExpired: "ACCESS_TOKEN_EXPIRED",
	UserNotAuthorized:  "USER_NOT_AUTHORIZED",
	UserCollision:      "USER_COLLISION",
	RemoteUnknown:      "UNKNOWN",
}

func (RemoteError) dataError() {}

// String returns the error name
func (e RemoteError) String() string {
	if e >= 0 && int(e) < len(remoteErrorNames) {
		return remoteErrorNames[e]
	}
	return fmt.Sprintf("RemoteError(%d)", int(e))
}

// Error implements the error interface.
func (e RemoteError) Error() string {
	return "remote: " + e.String()
}

var (
	_ DataError = LocalError(0)
	_ DataError = RemoteError(0)
)
