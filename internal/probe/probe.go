package probe

import (
	"context"

	"backdate/internal/media"
)

// Prober reports whether a media file already carries an embedded capture
// date. Implementations never modify the file.
type Prober interface {
	HasCaptureDate(ctx context.Context, path string) (bool, error)
}

// ToolClient is the slice of the external tool client the prober needs.
type ToolClient interface {
	HasDate(ctx context.Context, path string) (bool, error)
}

// Tool probes through the external tool. It handles every container the
// native reader does not.
type Tool struct {
	Client ToolClient
}

// HasCaptureDate implements Prober.
func (t Tool) HasCaptureDate(ctx context.Context, path string) (bool, error) {
	return t.Client.HasDate(ctx, path)
}

// Selector routes each file to the backend that understands its container:
// JPEG and TIFF to the in-process reader, everything else to the external
// tool. Unknown extensions deliberately go to the tool, which can actually
// see their dates; routing them to the native reader would resolve ambiguity
// toward an unwanted write.
type Selector struct {
	native Prober
	tool   Prober
}

// NewSelector builds the standard two-backend prober on top of the given
// tool client.
func NewSelector(tool ToolClient) Selector {
	return Selector{native: Native{}, tool: Tool{Client: tool}}
}

// HasCaptureDate implements Prober.
func (s Selector) HasCaptureDate(ctx context.Context, path string) (bool, error) {
	if media.Classify(path) == media.KindImage {
		return s.native.HasCaptureDate(ctx, path)
	}
	return s.tool.HasCaptureDate(ctx, path)
}
