// Package sidecar understands the exporter's metadata companion files.
//
// Every media file in a takeout archive may be accompanied by a JSON sidecar
// named <media>.supplemental-metadata.json. This package owns that naming
// convention (deriving the media path back from a sidecar path) and the
// record shape (the photoTakenTime field holding capture time as epoch
// seconds). Nothing here touches media files.
package sidecar
