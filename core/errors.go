package core

import "errors"

// ErrSessionNotFound is returned by session store operations addressed at a
// nonexistent session id. It is one of the two conditions allowed to surface
// to the transport layer as a hard failure.
var ErrSessionNotFound = errors.New("session not found")
