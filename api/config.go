// Package api provides an HTTP API server for inspecting and querying the
// pensieve memory system.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8088")
	ListenAddr string
}

// ErrorResponse is the JSON error envelope returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
