package server

// Server is the account API server as seen by main.
type Server interface {
	// RunServer starts listening and blocks until SIGINT, SIGTERM or SIGQUIT
	// is received and in-flight requests have drained.
	RunServer()

	// Shutdown stops accepting connections and waits for active requests to
	// finish, bounded by the shutdown timeout.
	Shutdown()
}
