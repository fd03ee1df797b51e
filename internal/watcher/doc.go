// Package watcher notices edits to the services' properties files while
// they run. A running service only reads its properties at launch, so the
// alert tells the operator that a restart is needed to apply the change.
package watcher
