// Package output renders command results.
//
//   - result.go: the Result variants produced by every command
//   - render.go: writing a Result to stdout in table or raw mode
//   - table.go: column-aligned tables built from JSON responses
//   - json.go: JSON pretty-printing
//   - progress.go: n/N progress for batch uploads on stderr
//
// Raw mode is meant for scripting. Table results are written byte for byte
// as the server sent them, raw results are pretty-printed when they hold
// JSON.
package output
