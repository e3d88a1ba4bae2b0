// File: internal/services/board/errors.go
package board

import "errors"

// ErrNotInView is returned by Select when the handoff is absent from the
// current filtered list.
var ErrNotInView = errors.New("board: handoff is not in the filtered view")
