// Package server exposes the static frontend over HTTP: the document tree,
// the generated config script, and a health endpoint, wrapped in request-ID,
// rate-limit, logging, recovery and CORS middleware.
package server
