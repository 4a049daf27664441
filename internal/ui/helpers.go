package ui

import (
	"errors"
	"fmt"

	myweblog "github.com/faluke/go-myweblog"
)

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// mutationSuccessText builds the flash line for a completed mutation. The
// service sometimes attaches a human readable title; prefer it.
func mutationSuccessText(verb string, result *myweblog.MutationResult) string {
	if result != nil && result.InfoMessageTitle != "" {
		return result.InfoMessageTitle
	}
	switch verb {
	case "create":
		return "Booking created"
	case "end":
		return "Booking ended"
	case "cancel":
		return "Booking cancelled"
	default:
		return "Done"
	}
}

// mutationFailureText builds the flash line for a failed mutation. Business
// rejections carry the service's own message verbatim.
func mutationFailureText(verb string, err error) string {
	var remote *myweblog.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	switch verb {
	case "create":
		return fmt.Sprintf("Booking failed: %v", err)
	case "end":
		return fmt.Sprintf("Could not end booking: %v", err)
	case "cancel":
		return fmt.Sprintf("Could not cancel booking: %v", err)
	default:
		return fmt.Sprintf("Request failed: %v", err)
	}
}
