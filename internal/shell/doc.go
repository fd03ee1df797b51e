// Package shell is the interactive front end of `minkafka shell`.
//
// The REPL reads commands with readline (history, TAB completion) and drives
// a Supervisor. Start, stop, topic creation and message sending are launched
// in the background and report back through state changes and alerts, which
// are printed above the prompt together with log entries.
package shell
