// Package services holds the application services behind the HTTP handlers
// and the report command.
//
// DashboardService owns the cached raw dataset. Each read runs the
// validate, derive and filter pipeline on that cache and never mutates it,
// so renders proceed under a read lock while a reload swaps the table
// under the write lock. HealthService reports readiness from the cache.
package services
