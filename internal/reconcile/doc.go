// Package reconcile is the pipeline core: it turns scanned sidecar paths
// into work items, processes each item through a short terminal state
// machine, and fans the work out across a fixed pool of workers.
//
// Each item ends in exactly one outcome. Files that already carry a capture
// date are skipped, files whose media is gone or whose sidecar holds no
// usable timestamp are skipped under their own labels, and every failure is
// isolated to its item as an error outcome. The embedded-date write is the
// only side effect and always the final step, so a fault can never destroy
// an existing timestamp.
//
// Planning happens before fan-out: sidecars that fail to match and later
// sidecars resolving to an already-claimed media file are settled as errors
// up front, which guarantees no two workers ever write to the same file.
package reconcile
