package marshal

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrRenameUnsupported is returned when a call requests output key renaming,
	// through WithPrefix or a field whose DumpTo is not empty.
	ErrRenameUnsupported = errors.New("output key renaming is not supported")
	// ErrNotSequence is returned by batch mode for input that is not a slice or array.
	ErrNotSequence = errors.New("batch input is not a sequence")
	// ErrSerializerPanic marks errors recovered from a panicking serializer in parallel batch mode.
	ErrSerializerPanic = errors.New("serializer panicked")
	// ErrClosed is returned by parallel batches on a closed Marshaller.
	ErrClosed = errors.New("marshaller is closed")
)

// ValidationFailure is an error carrying messages meant for the caller's error report.
type ValidationFailure interface {
	error
	ValidationMessages() []string
}

// ValidationError is the default validation failure raised by serializers.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a validation error with the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	switch len(e.Messages) {
	case 0:
		return "validation failed"
	case 1:
		return e.Messages[0]
	default:
		return strings.Join(e.Messages, "; ")
	}
}

func (e *ValidationError) ValidationMessages() []string {
	return e.Messages
}

// ValidationMatcher recognizes validation failures. It returns the messages to
// record and true, or false for errors that must abort the call.
type ValidationMatcher func(err error) ([]string, bool)

// DefaultValidationMatcher recognizes any error in the chain implementing ValidationFailure.
func DefaultValidationMatcher(err error) ([]string, bool) {
	var vf ValidationFailure
	if errors.As(err, &vf) {
		return messagesOf(vf), true
	}

	return nil, false
}

// MatchType builds a matcher recognizing only errors of type E, the way a caller
// names its own validation error class. messages extracts the report entries.
func MatchType[E error](messages func(E) []string) ValidationMatcher {
	return func(err error) ([]string, bool) {
		var target E
		if !errors.As(err, &target) {
			return nil, false
		}

		if messages == nil {
			return []string{target.Error()}, true
		}

		return messages(target), true
	}
}

func messagesOf(vf ValidationFailure) []string {
	if msgs := vf.ValidationMessages(); len(msgs) > 0 {
		return msgs
	}

	return []string{vf.Error()}
}

// ItemError annotates an error aborting a batch with the index of the failing item.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return "item " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
