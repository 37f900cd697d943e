// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from Config: listen port, request
// body limit for uploaded tables, read timeout and the optional API key
// enforced by the auth middleware.
package server
