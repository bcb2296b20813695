package gtm

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tagmanager "google.golang.org/api/tagmanager/v2"
)

// Client is a thin wrapper over the Tag Manager v2 API. Every path-scoped
// method checks the account guard before touching the network, performs a
// single API call and returns the decoded response or a typed error. No
// retries, no pagination.
type Client struct {
	svc   *tagmanager.Service
	guard *AccountGuard
}

// NewClient builds a client authenticated by ts and restricted by guard.
func NewClient(ctx context.Context, ts oauth2.TokenSource, guard *AccountGuard) (*Client, error) {
	svc, err := tagmanager.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create tag manager service: %w", err)
	}
	return &Client{svc: svc, guard: guard}, nil
}

// Guard exposes the account guard, mainly for logging and tests.
func (c *Client) Guard() *AccountGuard {
	return c.guard
}

// ListAccounts returns the accounts visible to the credential, filtered to
// the configured account when the guard is restricted.
func (c *Client) ListAccounts(ctx context.Context) ([]*tagmanager.Account, error) {
	resp, err := c.svc.Accounts.List().Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "account", "")
	}
	return c.guard.FilterAccounts(resp.Account)
}

// ListContainers returns the containers under an account.
func (c *Client) ListContainers(ctx context.Context, accountID string) ([]*tagmanager.Container, error) {
	if err := c.guard.ValidateAccess(accountID); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.List("accounts/" + accountID).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "account", accountID)
	}
	return resp.Container, nil
}

// GetContainer fetches a single container by path.
func (c *Client) GetContainer(ctx context.Context, path string) (*tagmanager.Container, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	container, err := c.svc.Accounts.Containers.Get(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "container", path)
	}
	return container, nil
}

// ListWorkspaces returns the workspaces in a container.
func (c *Client) ListWorkspaces(ctx context.Context, containerPath string) ([]*tagmanager.Workspace, error) {
	if err := c.guard.ValidatePath(containerPath); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.Workspaces.List(containerPath).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "container", containerPath)
	}
	return resp.Workspace, nil
}

// GetWorkspace fetches a single workspace by path.
func (c *Client) GetWorkspace(ctx context.Context, path string) (*tagmanager.Workspace, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	ws, err := c.svc.Accounts.Containers.Workspaces.Get(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", path)
	}
	return ws, nil
}

// CreateWorkspace creates a workspace in a container.
func (c *Client) CreateWorkspace(ctx context.Context, containerPath string, ws *tagmanager.Workspace) (*tagmanager.Workspace, error) {
	if err := c.guard.ValidatePath(containerPath); err != nil {
		return nil, err
	}
	created, err := c.svc.Accounts.Containers.Workspaces.Create(containerPath, ws).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "container", containerPath)
	}
	return created, nil
}

// ListTags returns the tags in a workspace.
func (c *Client) ListTags(ctx context.Context, workspacePath string) ([]*tagmanager.Tag, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.Workspaces.Tags.List(workspacePath).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return resp.Tag, nil
}

// GetTag fetches a single tag by path.
func (c *Client) GetTag(ctx context.Context, path string) (*tagmanager.Tag, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	tag, err := c.svc.Accounts.Containers.Workspaces.Tags.Get(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "tag", path)
	}
	return tag, nil
}

// CreateTag creates a tag in a workspace.
func (c *Client) CreateTag(ctx context.Context, workspacePath string, tag *tagmanager.Tag) (*tagmanager.Tag, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	created, err := c.svc.Accounts.Containers.Workspaces.Tags.Create(workspacePath, tag).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return created, nil
}

// UpdateTag replaces a tag. The fingerprint must match the stored resource or
// the API rejects the write.
func (c *Client) UpdateTag(ctx context.Context, path string, tag *tagmanager.Tag, fingerprint string) (*tagmanager.Tag, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	updated, err := c.svc.Accounts.Containers.Workspaces.Tags.Update(path, tag).Fingerprint(fingerprint).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "tag", path)
	}
	return updated, nil
}

// DeleteTag removes a tag by path.
func (c *Client) DeleteTag(ctx context.Context, path string) error {
	if err := c.guard.ValidatePath(path); err != nil {
		return err
	}
	if err := c.svc.Accounts.Containers.Workspaces.Tags.Delete(path).Context(ctx).Do(); err != nil {
		return wrapAPIError(err, "tag", path)
	}
	return nil
}

// ListTriggers returns the triggers in a workspace.
func (c *Client) ListTriggers(ctx context.Context, workspacePath string) ([]*tagmanager.Trigger, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.Workspaces.Triggers.List(workspacePath).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return resp.Trigger, nil
}

// GetTrigger fetches a single trigger by path.
func (c *Client) GetTrigger(ctx context.Context, path string) (*tagmanager.Trigger, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	trigger, err := c.svc.Accounts.Containers.Workspaces.Triggers.Get(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "trigger", path)
	}
	return trigger, nil
}

// CreateTrigger creates a trigger in a workspace.
func (c *Client) CreateTrigger(ctx context.Context, workspacePath string, trigger *tagmanager.Trigger) (*tagmanager.Trigger, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	created, err := c.svc.Accounts.Containers.Workspaces.Triggers.Create(workspacePath, trigger).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return created, nil
}

// DeleteTrigger removes a trigger by path.
func (c *Client) DeleteTrigger(ctx context.Context, path string) error {
	if err := c.guard.ValidatePath(path); err != nil {
		return err
	}
	if err := c.svc.Accounts.Containers.Workspaces.Triggers.Delete(path).Context(ctx).Do(); err != nil {
		return wrapAPIError(err, "trigger", path)
	}
	return nil
}

// ListVariables returns the variables in a workspace.
func (c *Client) ListVariables(ctx context.Context, workspacePath string) ([]*tagmanager.Variable, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.Workspaces.Variables.List(workspacePath).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return resp.Variable, nil
}

// GetVariable fetches a single variable by path.
func (c *Client) GetVariable(ctx context.Context, path string) (*tagmanager.Variable, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	variable, err := c.svc.Accounts.Containers.Workspaces.Variables.Get(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "variable", path)
	}
	return variable, nil
}

// CreateVariable creates a variable in a workspace.
func (c *Client) CreateVariable(ctx context.Context, workspacePath string, variable *tagmanager.Variable) (*tagmanager.Variable, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	created, err := c.svc.Accounts.Containers.Workspaces.Variables.Create(workspacePath, variable).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return created, nil
}

// UpdateVariable replaces a variable, guarded by fingerprint.
func (c *Client) UpdateVariable(ctx context.Context, path string, variable *tagmanager.Variable, fingerprint string) (*tagmanager.Variable, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	updated, err := c.svc.Accounts.Containers.Workspaces.Variables.Update(path, variable).Fingerprint(fingerprint).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "variable", path)
	}
	return updated, nil
}

// DeleteVariable removes a variable by path.
func (c *Client) DeleteVariable(ctx context.Context, path string) error {
	if err := c.guard.ValidatePath(path); err != nil {
		return err
	}
	if err := c.svc.Accounts.Containers.Workspaces.Variables.Delete(path).Context(ctx).Do(); err != nil {
		return wrapAPIError(err, "variable", path)
	}
	return nil
}

// CreateVersion snapshots a workspace into a new container version. The
// response may carry compiler errors alongside the version.
func (c *Client) CreateVersion(ctx context.Context, workspacePath, name, notes string) (*tagmanager.CreateContainerVersionResponse, error) {
	if err := c.guard.ValidatePath(workspacePath); err != nil {
		return nil, err
	}
	req := &tagmanager.CreateContainerVersionRequestVersionOptions{Name: name, Notes: notes}
	resp, err := c.svc.Accounts.Containers.Workspaces.CreateVersion(workspacePath, req).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "workspace", workspacePath)
	}
	return resp, nil
}

// PublishVersion publishes a container version. The fingerprint is required
// so a concurrent edit cannot be published blind.
func (c *Client) PublishVersion(ctx context.Context, versionPath, fingerprint string) (*tagmanager.PublishContainerVersionResponse, error) {
	if err := c.guard.ValidatePath(versionPath); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.Versions.Publish(versionPath).Fingerprint(fingerprint).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "version", versionPath)
	}
	return resp, nil
}

// ListVersionHeaders returns version headers for a container, optionally
// including deleted versions.
func (c *Client) ListVersionHeaders(ctx context.Context, containerPath string, includeDeleted bool) ([]*tagmanager.ContainerVersionHeader, error) {
	if err := c.guard.ValidatePath(containerPath); err != nil {
		return nil, err
	}
	resp, err := c.svc.Accounts.Containers.VersionHeaders.List(containerPath).IncludeDeleted(includeDeleted).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "container", containerPath)
	}
	return resp.ContainerVersionHeader, nil
}

// GetVersion fetches a container version by path.
func (c *Client) GetVersion(ctx context.Context, path string) (*tagmanager.ContainerVersion, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	version, err := c.svc.Accounts.Containers.Versions.Get(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "version", path)
	}
	return version, nil
}

// GetLiveVersion fetches the currently published version of a container.
func (c *Client) GetLiveVersion(ctx context.Context, containerPath string) (*tagmanager.ContainerVersion, error) {
	if err := c.guard.ValidatePath(containerPath); err != nil {
		return nil, err
	}
	version, err := c.svc.Accounts.Containers.Versions.Live(containerPath).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "container", containerPath)
	}
	return version, nil
}

// GetLatestVersionHeader fetches the header of the newest container version.
func (c *Client) GetLatestVersionHeader(ctx context.Context, containerPath string) (*tagmanager.ContainerVersionHeader, error) {
	if err := c.guard.ValidatePath(containerPath); err != nil {
		return nil, err
	}
	header, err := c.svc.Accounts.Containers.VersionHeaders.Latest(containerPath).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "container", containerPath)
	}
	return header, nil
}

// DeleteVersion soft-deletes a container version.
func (c *Client) DeleteVersion(ctx context.Context, path string) error {
	if err := c.guard.ValidatePath(path); err != nil {
		return err
	}
	if err := c.svc.Accounts.Containers.Versions.Delete(path).Context(ctx).Do(); err != nil {
		return wrapAPIError(err, "version", path)
	}
	return nil
}

// UndeleteVersion restores a soft-deleted container version.
func (c *Client) UndeleteVersion(ctx context.Context, path string) (*tagmanager.ContainerVersion, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	version, err := c.svc.Accounts.Containers.Versions.Undelete(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "version", path)
	}
	return version, nil
}

// UpdateVersion updates a version's name or notes, guarded by fingerprint.
func (c *Client) UpdateVersion(ctx context.Context, path string, version *tagmanager.ContainerVersion, fingerprint string) (*tagmanager.ContainerVersion, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	updated, err := c.svc.Accounts.Containers.Versions.Update(path, version).Fingerprint(fingerprint).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "version", path)
	}
	return updated, nil
}

// SetLatestVersion marks a version as the latest for its container.
func (c *Client) SetLatestVersion(ctx context.Context, path string) (*tagmanager.ContainerVersion, error) {
	if err := c.guard.ValidatePath(path); err != nil {
		return nil, err
	}
	version, err := c.svc.Accounts.Containers.Versions.SetLatest(path).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err, "version", path)
	}
	return version, nil
}
