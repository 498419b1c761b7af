// Package envscript implements the startup generator: it selects whitelisted
// variables from the process environment and materializes them as a script
// file that assigns a global configuration object, ready to be served next to
// the static build artifact. Generation runs once per container start, before
// the server accepts connections, and always fully overwrites the previous
// file, so restarting with a different environment is all it takes to
// reconfigure a deployment.
package envscript
