// Package config stores the ota configuration file.
//
//   - store.go: load and atomic save of the persisted record (~/.ota.conf)
//   - init.go: building a fresh record from `ota init` flags
//
// The record holds the credentials archive path, the four service base
// URLs and the cached access token.
package config
