// Package exiftool wraps the exiftool binary behind a small typed client.
//
// Two operations matter to the pipeline: probing a file for any usable
// capture-date field, and stamping the date fields from an epoch value.
// Probing uses the read-only -s3 value listing; writing uses
// -overwrite_original so no backup files are left behind. Video containers
// additionally receive the QuickTime media/track create and modify tags.
//
// Command execution sits behind the Executor interface so tests can substitute
// canned output for a real subprocess.
package exiftool
