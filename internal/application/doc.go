// Package application provides application initialization and dependency
// wiring. It runs the startup generator and builds the handler, router, and
// HTTP server instances in an order that guarantees the config script exists
// on disk before the listener opens, keeping the main package focused on CLI
// parsing and orchestration.
package application
