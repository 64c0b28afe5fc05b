package probe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// zeroDate is the placeholder some cameras write instead of a real date.
const zeroDate = "0000:00:00 00:00:00"

// nativeDateFields are the EXIF tags consulted, in order: original capture
// time, generic date, digitized time.
var nativeDateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTime,
	exif.DateTimeDigitized,
}

// Native reads EXIF headers in-process. It only sees JPEG and TIFF
// containers; the Selector keeps everything else away from it.
type Native struct{}

// HasCaptureDate implements Prober. A file that opens but carries no
// parseable EXIF block has no date to preserve, so decode failures report
// false without error. Open failures are real errors.
func (Native) HasCaptureDate(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return false, nil
	}
	for _, field := range nativeDateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil {
			continue
		}
		value = strings.TrimSpace(strings.Trim(value, "\x00"))
		if value != "" && value != zeroDate {
			return true, nil
		}
	}
	return false, nil
}
