// Package resolver implements the runtime configuration accessor: a small
// two-source lookup over a build-time constant table and the map written by
// the startup generator, with build-time values taking precedence. It is a
// pure function over immutable snapshots; there is no process-wide mutable
// global to couple against.
package resolver
