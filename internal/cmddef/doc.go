// Package cmddef parses and validates command definition files.
//
// A definition file is a YAML document named <prefix>_<name>[.<suffix>].yaml
// that declares one or more commands under a top-level "commands" map. Files
// are data: each command lists steps that reference actions registered in Go,
// so nothing discovered on disk is ever executed as code. Every file is
// validated against an embedded JSON schema before it is decoded.
package cmddef
