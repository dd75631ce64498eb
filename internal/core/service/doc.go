// Package service provides the domain services behind every ota command.
//
// Services orchestrate domain models and define interfaces for their IO
// dependencies so they can be exercised in isolation:
//
//   - ArchiveStore: reads credentials from the credentials archive
//   - TokenManager: obtains, caches and persists access tokens
//   - ExpandPackages / ExpandUpdates: turn declarative files into requests
package service
