// Package domain defines the core domain models for ota.
//
// Domain models are plain values without IO dependencies:
//
//   - Config: the persisted CLI configuration record
//   - Credentials: authentication material from the credentials archive
//   - AccessToken: bearer token and its namespace claim
//   - Command: the two-level command grammar
//   - TufPackage, TufUpdates: concrete upload and update requests
//   - Errors: structured error kinds
//
// Validation is done with go-playground/validator through Validate.
package domain
