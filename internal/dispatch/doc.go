// Package dispatch discovers and loads the commands cgc can run.
//
// Commands live in YAML definition files in a commands directory, plus an
// optional per-platform subdirectory (mac/ or win/). A file is named
// <prefix>_<name>[.<suffix>].yaml and defines one or more commands as a list
// of steps. Each step names an action from a static table registered in Go;
// definition files are data and are never executed.
//
// Discovery only looks at file names. A command's files are read, validated
// and merged the first time it is loaded, with platform files overriding
// generic ones. Loaded commands are memoised for the life of the Loader.
package dispatch
