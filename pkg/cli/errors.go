package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/entity"
)

// Common CLI errors
var (
	ErrNoChanges = errors.New("nothing to change: pass at least one field flag")
	ErrCancelled = errors.New("cancelled")
)

// notFoundError is returned when the entity named on the command line does not exist.
type notFoundError struct {
	kind string
	id   int64
}

func (e *notFoundError) Error() string {
	return FormatNotFoundError(e.kind, fmt.Sprint(e.id))
}

// FormatConnectionError returns a user-friendly error message for transport failures.
func FormatConnectionError(err error) string {
	return fmt.Sprintf(`Error: %s

Suggestions:
  • Check that the backend is running
  • Verify the API URL with: rentdesk config
  • Override it with --api-url or RENTDESK_API_URL`, err)
}

// FormatNotFoundError returns a user-friendly error message for not found errors.
func FormatNotFoundError(resourceType, id string) string {
	return fmt.Sprintf(`Error: %s not found: %s

Suggestions:
  • Check the ID with: rentdesk %s list
  • Verify you're connected to the right backend`, resourceType, id, resourceType)
}

// FormatValidationError lists the rejected fields one per line.
func FormatValidationError(err error) string {
	var b strings.Builder
	var verr *entity.ValidationError
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(&b, "Error: invalid %s", verr.Entity)
		for _, fe := range verr.Errors {
			fmt.Fprintf(&b, "\n  • %s: %s", orDash(fe.Field), fe.Message)
		}
	case errors.As(err, &apiErr) && len(apiErr.FieldErrors) > 0:
		fmt.Fprintf(&b, "Error: the backend rejected the %s", apiErr.FieldErrors[0].ObjectName)
		for _, fe := range apiErr.FieldErrors {
			fmt.Fprintf(&b, "\n  • %s: %s", orDash(fe.Field), fe.Message)
		}
	default:
		b.WriteString("Error: " + err.Error())
	}
	return b.String()
}

func formatError(err error) string {
	var nf *notFoundError
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &nf):
		return nf.Error()
	case errors.Is(err, apiclient.ErrTransport):
		return FormatConnectionError(err)
	case errors.As(err, &verr), errors.Is(err, apiclient.ErrValidation):
		return FormatValidationError(err)
	default:
		return "Error: " + err.Error()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
