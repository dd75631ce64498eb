// Package main provides the entry point for ota.
//
// ota is the command-line client of an OTA fleet-management deployment. It
// talks to the device registry, the TUF repository, the director and the
// campaigner with one set of credentials:
//
//	ota init --credentials credentials.zip --campaigner URL --director URL --registry URL
//	ota device list --all --table
//	ota package upload --packages packages.toml
//	ota update create --targets targets.toml
//	ota campaign create --name spring --update UUID --groups UUID
package main
