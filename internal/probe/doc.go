// Package probe answers one question: does a media file already carry an
// embedded capture date? Files that do are left untouched by the pipeline,
// so a probe must never report a false positive (a spurious "no date" would
// overwrite a real camera timestamp downstream).
//
// Two backends exist. The native backend parses EXIF headers in-process and
// covers the JPEG/TIFF containers the reader understands; it keeps the common
// case off the subprocess path. Every other container goes through the
// external tool, which understands far more formats. The Selector routes by
// extension. A backend failure is always surfaced as an error, never folded
// into "no date".
package probe
