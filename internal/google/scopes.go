package google

import (
	tagmanager "google.golang.org/api/tagmanager/v2"
)

// Scopes returns the full set of Tag Manager OAuth scopes the server
// requests. Managing tags, triggers, variables and versions needs the edit
// and publish scopes on top of readonly.
func Scopes() []string {
	return []string{
		tagmanager.TagmanagerDeleteContainersScope,
		tagmanager.TagmanagerEditContainersScope,
		tagmanager.TagmanagerEditContainerversionsScope,
		tagmanager.TagmanagerManageAccountsScope,
		tagmanager.TagmanagerManageUsersScope,
		tagmanager.TagmanagerPublishScope,
		tagmanager.TagmanagerReadonlyScope,
	}
}
