package application

import "errors"

var (
	// ErrRecordsUnavailable replaces any storage failure on the read path.
	// The original error is logged, never returned.
	ErrRecordsUnavailable = errors.New("failed to retrieve records")
	ErrUserNotFound       = errors.New("user not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrPhotoUnavailable   = errors.New("photo storage not configured")
	ErrInvalidReason      = errors.New("idUsuarioDigital and motivo are required")
	ErrReasonWriteFailed  = errors.New("failed to save reason")
	ErrUpstream           = errors.New("upstream report service error")
)
