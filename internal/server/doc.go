// Package server wires and runs the sync gateway's HTTP transport.
//
// It provides orchestration for the server lifecycle: startup, signal
// handling, graceful shutdown of in-flight requests, and draining the
// audit worker queue before exit.
package server
