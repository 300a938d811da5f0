// Package http implements the HTTP handlers of the purchasing dashboard.
//
// Handlers stay thin: they parse and validate the query, call the
// dashboard service and either render the result or hand the error to
// the shared ErrorHandler, which produces an RFC 7807 response.
//
// Routes mounted by the application:
//
//	GET  /api/dataset                 cached dataset description
//	POST /api/dataset/reload          re-read the dataset file
//	GET  /api/dashboard               metrics, charts data and table as JSON
//	GET  /api/dashboard/filters       filter options for a selection
//	GET  /api/dashboard/orders.csv    order table export
//	GET  /api/dashboard/orders.xlsx   order table export
//	GET  /dashboard                   HTML dashboard page
//	GET  /api/health                  readiness
//
// Every dashboard route accepts the same query:
//
//	year=2024              order year; absent means the most recent year
//	plant=P1&plant=P2      explicit plants; absent means every plant
//	all_plants=false       with no plant values, selects no plant
//	all_groups=false       switch to an explicit group list (default true)
//	group=G1&group=G2      the explicit groups
package http
