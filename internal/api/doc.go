// Package api implements the HTTP handlers of the task API: login, task
// CRUD with response caching, import triggering and the public root and
// health endpoints. Handlers translate between the Portuguese wire format
// and domain types, and map service errors to status codes in one place
// (MapErrorToStatusCode).
package api
