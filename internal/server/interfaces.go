package server

// Server is the lifecycle contract of a transport server owned by this
// package: RunServer blocks until the listener stops, Shutdown drains
// in-flight requests and releases resources.
type Server interface {
	// RunServer starts accepting requests and blocks until the server
	// stops serving.
	RunServer()

	// Shutdown stops the server gracefully.
	Shutdown()
}
