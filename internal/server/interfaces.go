package server

// Server is the lifecycle contract exposed to main. RunServer blocks until a
// stop signal arrives or the server fails; Shutdown drains in-flight requests
// before releasing the listener.
type Server interface {
	RunServer()
	Shutdown()
}
