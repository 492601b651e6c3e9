package upstream

import "errors"

// ErrUnexpectedStatus marks a non-200 response from an upstream source.
var ErrUnexpectedStatus = errors.New("unexpected upstream status")
