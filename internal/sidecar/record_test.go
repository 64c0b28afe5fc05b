package sidecar

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordTimestamp(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		want    int64
		present bool
	}{
		{"string epoch", `{"photoTakenTime":{"timestamp":"1482184800"}}`, 1482184800, true},
		{"numeric epoch", `{"photoTakenTime":{"timestamp":1736899200}}`, 1736899200, true},
		{"negative epoch", `{"photoTakenTime":{"timestamp":"-86400"}}`, -86400, true},
		{"padded string", `{"photoTakenTime":{"timestamp":" 1482184800 "}}`, 1482184800, true},
		{"missing object", `{"title":"IMG_0001.jpg"}`, 0, false},
		{"null object", `{"photoTakenTime":null}`, 0, false},
		{"null timestamp", `{"photoTakenTime":{"timestamp":null}}`, 0, false},
		{"empty string", `{"photoTakenTime":{"timestamp":""}}`, 0, false},
		{"non-numeric", `{"photoTakenTime":{"timestamp":"yesterday"}}`, 0, false},
		{"fractional", `{"photoTakenTime":{"timestamp":1482184800.5}}`, 0, false},
		{"wrong type", `{"photoTakenTime":{"timestamp":{"v":1}}}`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Parse([]byte(tc.doc))
			if err != nil {
				t.Fatal(err)
			}
			got, ok := rec.Timestamp()
			if ok != tc.present {
				t.Fatalf("present = %v, want %v", ok, tc.present)
			}
			if got != tc.want {
				t.Fatalf("timestamp = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	doc := `{
		"title": "IMG_0001.jpg",
		"description": "",
		"imageViews": "12",
		"creationTime": {"timestamp": "1482999999", "formatted": "..."},
		"photoTakenTime": {"timestamp": "1482184800", "formatted": "Dec 19, 2016"},
		"geoData": {"latitude": 0.0, "longitude": 0.0}
	}`
	rec, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := rec.Timestamp()
	if !ok || got != 1482184800 {
		t.Fatalf("timestamp = %d/%v, want 1482184800/true", got, ok)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte(`{"photoTakenTime":`)); err == nil {
		t.Fatal("expected error for truncated document")
	}
	if _, err := Parse([]byte(`not json at all`)); err == nil {
		t.Fatal("expected error for non-JSON content")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg"+Suffix)
	if err := os.WriteFile(path, []byte(`{"photoTakenTime":{"timestamp":"1482184800"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := rec.Timestamp(); !ok || got != 1482184800 {
		t.Fatalf("timestamp = %d/%v, want 1482184800/true", got, ok)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
