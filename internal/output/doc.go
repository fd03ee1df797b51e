// Package output holds the shared output log that service processes write
// into, and the pump that streams a process pipe into it.
package output
