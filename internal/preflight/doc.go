// Package preflight provides readiness checks for the filesystem paths and
// external tools backdate depends on.
//
// These checks run in two contexts:
//   - The runner calls RunAll before touching a target tree. If any check
//     fails, the run aborts before a single sidecar is read.
//   - The CLI "backdate doctor" command renders the same results so a user
//     can verify an install without pointing the tool at real media.
//
// Checks gated by a config toggle are skipped when the feature is disabled.
package preflight
