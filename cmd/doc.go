// Package cmd implements the minkafka command line interface with cobra.
//
// Long running modes (up, shell) are delegated to internal/app. One-shot
// commands (topic create, send) build the same services, run a single
// operation and print the resulting alert; they exit with
// ExitCodeOperationFailed when the operation did not succeed.
package cmd
