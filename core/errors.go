package core

import "errors"

// ErrAgentNotFound is returned when an operation names an agent id that is
// not registered. It is a normal, recoverable condition; transports usually
// map it to a "not found" response. Test with errors.Is.
var ErrAgentNotFound = errors.New("agent not found")
