// Package app wires the purchasing dashboard together: configuration,
// logging and OpenTelemetry, the dashboard and health services, the chi
// router and the HTTP server.
//
// # Initialization Flow
//
//  1. Load configuration (config.Load) and initialize the logger
//  2. NewApplication sets up OpenTelemetry, metrics, services and routes
//  3. LoadDataset reads and validates the configured dataset
//  4. Run serves until SIGINT or SIGTERM, then shuts down gracefully
//
// # Routes
//
//	GET  /                        redirects to /dashboard
//	GET  /dashboard               rendered dashboard page
//	GET  /api/dashboard           summary and filter options as JSON
//	GET  /api/dashboard/filters   filter options only
//	GET  /api/dashboard/orders.*  CSV and XLSX exports
//	GET  /api/dataset             dataset information
//	POST /api/dataset/reload      re-read the dataset
//	GET  /api/health[/live]       readiness and liveness
//	GET  /api/version             build information
//	GET  /metrics                 Prometheus scrape endpoint
//
// Initialization errors are returned to the caller; the package never
// calls os.Exit.
package app
