// Package watch re-runs reconciliation while a directory tree is still
// growing.
//
// The service watches every directory under the target root through
// fsnotify and coalesces bursts of sidecar activity with a debounce timer,
// so one archive extraction produces one pass instead of a pass per file.
// Directories created after startup are added to the watch set as they
// appear.
package watch
