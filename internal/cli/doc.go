// Package cli defines the Cobra command tree for the cgc CLI. Built-in
// commands (commands, doctor, config, version) are registered statically; every
// command discovered in the commands directory is registered at startup and
// loaded only when invoked. Command implementations delegate to internal
// packages and only handle flag parsing, I/O formatting, and option layering.
package cli
