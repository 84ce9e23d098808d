// Package shell runs external processes for command steps. A process either
// inherits the controlling terminal (the result carries only the exit code)
// or is piped (stdout and stderr are fully buffered into the result).
//
// Invocations block until the child exits. No timeout is imposed; callers
// that need bounded execution pass a context with a deadline.
package shell
