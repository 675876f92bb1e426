// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber app lifecycle; this package only defines the
// listen port, the API key guarding the ops endpoints and the shutdown bound.
package server
