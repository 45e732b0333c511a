package services

import (
	"fmt"
	"strings"
)

// ValidationError reports the required submission fields that were missing.
// It is returned before any external call is made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// DispatchError means the notification could not be delivered. The enrichment
// already happened but the message is lost.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to send Telegram message: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
