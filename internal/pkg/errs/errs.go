package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is also matches marks added with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// KindOf returns the first caller-facing kind err carries, or nil when the
// error is an unclassified failure.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range callerKinds {
		if cr.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ExtractStackLines renders err with its wrap chain and recorded stack,
// truncated to maxLines when maxLines is positive.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
