package change

import "errors"

// ErrInvalidChange is returned by a model that cannot apply a change against
// its current state (offsets out of range or a reversed range).
var ErrInvalidChange = errors.New("invalid change")
