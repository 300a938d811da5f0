// Package shared holds helpers used by more than one internal package.
//
// The testutil subpackage provides a capturing slog handler and dataset
// fixtures for tests. Nothing here carries business logic.
package shared
