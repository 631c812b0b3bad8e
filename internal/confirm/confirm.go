package confirm

import "errors"

// ErrDeclined is returned by services when a destructive action was not
// confirmed. No state changes in that case.
var ErrDeclined = errors.New("confirmation declined")

// Confirmer answers whether a destructive action may proceed. The HTTP layer
// answers it from an explicit confirm flag sent by the client; tests and tools
// can pass Always or Never.
type Confirmer interface {
	Confirm(action, summary string) bool
}

// Func adapts a plain function to the Confirmer interface.
type Func func(action, summary string) bool

func (f Func) Confirm(action, summary string) bool {
	return f(action, summary)
}

var (
	Always Confirmer = Func(func(string, string) bool { return true })
	Never  Confirmer = Func(func(string, string) bool { return false })
)
