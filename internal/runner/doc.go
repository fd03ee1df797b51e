// Package runner launches the scripts of a Kafka installation as child
// processes.
//
// A command name such as "zookeeper-server-start" resolves to
// bin/windows/<name>.bat run through cmd.exe on Windows and to bin/<name>.sh
// run through /bin/sh elsewhere. Run returns once the process exists; the
// caller owns its output pipes and must drain them before Wait.
package runner
