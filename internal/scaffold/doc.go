// Package scaffold generates new command definition files from an embedded
// template. It powers the "cgc new" command. Generated files are validated
// against the definition schema before anything is written.
package scaffold
