// Package command provides the ota command tree.
//
// The tree is built with urfave/cli/v2 from the domain command vocabulary:
//
//   - root.go: App, global flags, per-invocation environment
//   - router.go: token normalization and dispatch of a domain.Command
//   - init.go: configuration setup
//   - campaign.go, device.go, group.go, package.go, update.go: resource handlers
//
// Every leaf parses its flags, calls the matching endpoint binding and
// renders the result. A response with an error status is rendered before the
// command fails.
package command
