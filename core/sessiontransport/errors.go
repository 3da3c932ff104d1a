package sessiontransport

import "errors"

// ErrNoToken is returned when a token cannot be read or issued.
var ErrNoToken = errors.New("sessiontransport: no token")
