package gtm

import (
	"fmt"
	"strings"
)

// WorkspacePath holds the components of a workspace resource path.
type WorkspacePath struct {
	AccountID   string
	ContainerID string
	WorkspaceID string
}

// String rebuilds the full resource path.
func (p WorkspacePath) String() string {
	return BuildWorkspacePath(p.AccountID, p.ContainerID, p.WorkspaceID)
}

// BuildWorkspacePath assembles a workspace resource path from its IDs.
func BuildWorkspacePath(accountID, containerID, workspaceID string) string {
	return fmt.Sprintf("accounts/%s/containers/%s/workspaces/%s", accountID, containerID, workspaceID)
}

// BuildContainerPath assembles a container resource path from its IDs.
func BuildContainerPath(accountID, containerID string) string {
	return fmt.Sprintf("accounts/%s/containers/%s", accountID, containerID)
}

// ParseWorkspacePath splits a workspace path into its components. The path
// must have exactly the accounts/{id}/containers/{id}/workspaces/{id} shape.
func ParseWorkspacePath(path string) (WorkspacePath, error) {
	parts := strings.Split(path, "/")
	if len(parts) != 6 || parts[0] != "accounts" || parts[2] != "containers" || parts[4] != "workspaces" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return WorkspacePath{}, &ParameterFormatError{
			Key:      "path",
			Expected: "accounts/{accountId}/containers/{containerId}/workspaces/{workspaceId}",
		}
	}
	return WorkspacePath{AccountID: parts[1], ContainerID: parts[3], WorkspaceID: parts[5]}, nil
}

// ExtractID returns the ID following the plural segment of resourceType, e.g.
// ExtractID("accounts/1/containers/2", "container") returns "2".
func ExtractID(path, resourceType string) (string, error) {
	parts := strings.Split(path, "/")
	plural := resourceType + "s"
	for i, part := range parts {
		if part == plural && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}
	return "", &ParameterFormatError{
		Key:      "path",
		Expected: fmt.Sprintf(".../%s/{id}/...", plural),
	}
}

// ExtractAccountID returns the account ID a resource path belongs to.
func ExtractAccountID(path string) (string, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "accounts" || parts[1] == "" {
		return "", &ParameterFormatError{Key: "path", Expected: `a path starting with "accounts/{id}"`}
	}
	return parts[1], nil
}
