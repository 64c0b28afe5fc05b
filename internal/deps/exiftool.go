package deps

import (
	"context"
	"fmt"

	"backdate/internal/exiftool"
)

// CheckExiftool reports the availability of the ExifTool binary the client
// is configured with.
//
// Presence on PATH alone is not enough to trust the install, so after the
// lookup succeeds the check asks the binary for its version. A binary that
// resolves but cannot answer -ver is reported as unavailable with the probe
// failure in the detail.
func CheckExiftool(ctx context.Context, client *exiftool.Client) Status {
	statuses := CheckBinaries([]Requirement{{
		Name:        "ExifTool",
		Command:     client.Binary(),
		Description: "Reads and writes media capture timestamps",
	}})
	status := statuses[0]
	if !status.Available {
		return status
	}

	version, err := client.Version(ctx)
	if err != nil {
		status.Available = false
		status.Detail = fmt.Sprintf("version probe failed: %v", err)
		return status
	}
	status.Detail = "version " + version
	return status
}
