package errors

import (
	"encoding/json"
	"maps"
	"strings"

	"github.com/cockroachdb/errors"
)

const detailsPrefix = "__json__:"

// ErrorBuilder provides a fluent interface for building errors
// but does not implement the error interface.
// Mark must be the last call in the chain when using the builder.
type ErrorBuilder struct {
	err     error
	details map[string]any
}

// NewError starts a new error builder chain
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// NewErrorf starts a new error builder chain with a formatted message
func NewErrorf(format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError starts a builder chain with an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithHint sets the message shown to API and CLI users
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails records identifiers safe to return to the client,
// such as rule or booking IDs. Repeated calls merge into one set.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	if b.details == nil {
		b.details = make(map[string]any, len(details))
	}
	maps.Copy(b.details, details)
	return b
}

// Mark marks the error with a sentinel error
// should be the last call in the chain
func (b *ErrorBuilder) Mark(reference error) error {
	return errors.Mark(b.build(), reference)
}

// Error returns the built error without marking it
func (b *ErrorBuilder) Error() error {
	return b.build()
}

func (b *ErrorBuilder) build() error {
	if len(b.details) == 0 {
		return b.err
	}
	marshaled, err := json.Marshal(b.details)
	if err != nil {
		return b.err
	}
	return errors.WithSafeDetails(b.err, detailsPrefix+"%s", errors.Safe(string(marshaled)))
}

// Details returns the reportable details attached anywhere in err's chain.
// Outer wrappers win on duplicate keys. It returns nil when there are none.
func Details(err error) map[string]any {
	var out map[string]any
	payloads := errors.GetAllSafeDetails(err)
	for i := len(payloads) - 1; i >= 0; i-- {
		for _, detail := range payloads[i].SafeDetails {
			raw, ok := strings.CutPrefix(detail, detailsPrefix)
			if !ok {
				continue
			}
			var level map[string]any
			if json.Unmarshal([]byte(raw), &level) != nil {
				continue
			}
			if out == nil {
				out = make(map[string]any, len(level))
			}
			maps.Copy(out, level)
		}
	}
	return out
}
