package gtm

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ValidationError reports an input that failed validation before any API
// call was made.
type ValidationError struct {
	Field    string
	Value    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected %s", e.Field, e.Value, e.Expected)
}

// PermissionError reports an account access denial. When the server is
// restricted to a single account, Configured holds that account ID. Requested
// is empty when the configured account was not found among the accounts the
// credential can see.
type PermissionError struct {
	Configured string
	Requested  string
}

func (e *PermissionError) Error() string {
	switch {
	case e.Requested == "":
		return fmt.Sprintf("account ID %s not found in accessible accounts", e.Configured)
	case e.Configured == "":
		return fmt.Sprintf("permission denied for %s", e.Requested)
	default:
		return fmt.Sprintf("access denied: this server is restricted to account ID %s, requested account: %s", e.Configured, e.Requested)
	}
}

// ConfigurationError reports missing or inconsistent process configuration,
// such as an unknown auth method or an absent OAuth token file.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Setting, e.Reason)
}

// ParameterFormatError reports a malformed GTM resource path or parameter
// structure.
type ParameterFormatError struct {
	Key      string
	Expected string
}

func (e *ParameterFormatError) Error() string {
	return fmt.Sprintf("malformed %s: expected %s", e.Key, e.Expected)
}

// NotFoundError reports a GTM resource that does not exist.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
	ParentPath   string
}

func (e *NotFoundError) Error() string {
	if e.ParentPath != "" {
		return fmt.Sprintf("%s %s not found under %s", e.ResourceType, e.ResourceID, e.ParentPath)
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceID)
}

// APIError reports a Tag Manager API failure that is neither a not-found nor
// a permission problem.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tag manager API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// wrapAPIError maps a googleapi error onto the typed taxonomy. The resource
// type and ID give not-found errors something useful to say.
func wrapAPIError(err error, resourceType, resourceID string) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("tag manager request failed: %w", err)
	}
	switch gerr.Code {
	case 404:
		return &NotFoundError{ResourceType: resourceType, ResourceID: resourceID}
	case 401, 403:
		return &PermissionError{Requested: resourceID, Configured: ""}
	default:
		return &APIError{StatusCode: gerr.Code, Message: gerr.Message}
	}
}
