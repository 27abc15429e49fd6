// Package cmd implements the command-line interface for the FreeFocus
// eye tracking service. It provides a hierarchical command structure
// with operations for running the daemon and talking to it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Commands for starting and configuring the FreeFocus daemon
//   - shell: The interactive operator console
//   - ctl: One-shot client commands (show, record, stats, stop, send)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See freefocus -help for a list of all commands.
package cmd
