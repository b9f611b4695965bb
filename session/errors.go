package session

import "github.com/pkg/errors"

// ErrIOFailure matches every save or load failure via errors.Is
var ErrIOFailure = errors.New("i/o failed")

// IOFailure reports that saving or loading the board failed. Callers are not
// expected to tell a missing file from a failed write.
type IOFailure struct {
	Op  string
	Err error
}

func (e *IOFailure) Error() string {
	return e.Op + ": " + ErrIOFailure.Error() + ": " + e.Err.Error()
}

func (e *IOFailure) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIOFailure) hold for any IOFailure
func (e *IOFailure) Is(target error) bool { return target == ErrIOFailure }

func ioFailure(op string, err error) error {
	return &IOFailure{Op: op, Err: err}
}
