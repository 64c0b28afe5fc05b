// Package runner wires scanning, probing, and writing into complete
// reconciliation runs.
//
// Execute owns the lifecycle of one run: the per-run log file, the log
// retention sweep, preflight, a lock file inside the target tree so
// concurrent runs cannot race on the same media, the scan/plan/pool
// pipeline, and finally history persistence. Item failures never abort a
// run; only a dead context does.
package runner
