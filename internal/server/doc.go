// Package server runs the storage service transports.
//
// It binds the HTTP API and the optional gRPC health listener, starts them,
// and stops both gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
