// Package confloader reads and writes configuration files with koanf.
//
// The file format follows the extension: .yaml and .yml use YAML, every
// other path is treated as JSON. Values given on the command line are
// layered on top with LoadMap, so the loading order is file first, then
// flags.
package confloader
