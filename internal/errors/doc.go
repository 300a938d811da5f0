// Package errors maps application failures to RFC 7807 problem responses.
//
// Handlers return plain Go errors. ErrorHandler classifies them with
// errors.As and renders a ProblemDetails body through chi/render:
//
//   - *dataprocessing.SchemaError becomes 422 with the missing columns
//   - *dataprocessing.LoadError becomes 503 with the dataset path
//   - *APIError keeps its own status and code
//   - validator.ValidationErrors becomes 400 with one entry per field
//
// Anything else is a 500 whose detail does not leak the cause.
package errors
