package playvault

import "errors"

var (
	ErrPayloadDecode   = errors.New("unable to decode payload")
	ErrPayloadEncode   = errors.New("unable to encode response")
	ErrNoSessionUser   = errors.New("no user id in session context")
	ErrNoActiveSession = errors.New("no active session for user")
)
