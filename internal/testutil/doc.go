// Package testutil provides scripted module implementations shared by tests
// across packages. Not for production use.
package testutil
