// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the settings it reads: port, API key, body limit and whether
// /metrics is exposed.
package server
