package valueobjects

import "errors"

var ErrUnknownZone = errors.New("unknown zone")
