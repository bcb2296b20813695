// Package google provides OAuth2 token sources for the Tag Manager API. Two
// strategies exist: application default credentials for service accounts and
// headless environments, and an interactive browser flow whose token is
// persisted locally and refreshed transparently afterwards.
package google
