package server

// Server runs the storage service listeners.
type Server interface {
	// RunServer serves on every bound listener and blocks until SIGTERM,
	// SIGINT or SIGQUIT, then shuts all of them down.
	RunServer()

	// Shutdown stops the listeners gracefully. In-flight requests finish
	// first, bounded by the shutdown timeout.
	Shutdown()
}
