package actions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/session"
)

var (
	// ErrLoginRequired is returned, without any request, when an action
	// needs a session and there is none.
	ErrLoginRequired = errors.New("login required")
	// ErrAdminRequired is returned, without any request, for admin actions
	// of non-admin users.
	ErrAdminRequired = errors.New("administrator privileges required")
	// ErrInsufficientBalance is returned, without any request, when the local
	// balance cannot cover a spend.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ValidationError reports a form field rejected before any request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Message turns an action error into the text shown to the user. Server
// rejections are shown verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	switch {
	case errors.Is(err, ErrLoginRequired):
		return "Please log in first."
	case errors.Is(err, ErrAdminRequired):
		return "Only administrators can do that."
	case errors.Is(err, ErrInsufficientBalance):
		return "Insufficient balance."
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, session.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case apiclient.IsTransport(err):
		return "Could not reach the server. Please try again."
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if apiErr.StatusCode == http.StatusUnauthorized {
			return "Your session has expired. Please log in again."
		}
		return fmt.Sprintf("Request failed (%d %s).", apiErr.StatusCode, apiErr.StatusText)
	}
	return err.Error()
}
