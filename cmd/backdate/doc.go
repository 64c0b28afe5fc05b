// Package main hosts the backdate CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// reconciliation runs, directory watching, run-history queries, and
// configuration scaffolding. It centralizes configuration resolution and
// output rendering so subcommands stay declarative while the pipeline logic
// lives in the internal packages.
package main
