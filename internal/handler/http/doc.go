// Package http is the REST transport of the storage service.
//
// Route wiring lives in routes.go. Cross-cutting concerns (panic recovery,
// trace ids, access logging, response compression, request timeouts and
// bearer authentication) are chi middlewares applied before the request
// reaches the service layer. Service errors are translated to statuses in
// errors_mapper.go.
package http
