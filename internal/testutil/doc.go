// Package testutil contains scripted backends used across tests so agents,
// the registry and the transport can be exercised without a model router.
// They are not intended for production usage.
package testutil
