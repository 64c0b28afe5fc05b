package exiftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultBinary is used when no explicit binary path is configured.
const DefaultBinary = "exiftool"

// TimestampLayout is the date syntax exiftool expects in tag assignments.
const TimestampLayout = "2006:01:02 15:04:05"

// zeroDate is the placeholder some cameras write instead of a real date.
// A probe that finds only this value treats the file as dateless.
const zeroDate = "0000:00:00 00:00:00"

// probeFields lists the date tags consulted during a probe, in the order the
// tool prints them. Any one non-empty, non-zero value counts as a date.
var probeFields = []string{
	"-DateTimeOriginal",
	"-CreateDate",
	"-MediaCreateDate",
	"-TrackCreateDate",
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps exiftool CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an exiftool client. An empty binary falls back to
// DefaultBinary; timeoutSeconds of zero disables the per-call timeout.
func New(binary string, timeoutSeconds int, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Binary returns the configured binary name or path.
func (c *Client) Binary() string {
	return c.binary
}

// FormatTimestamp renders epoch seconds in the tool's date syntax. The value
// is rendered in UTC; sidecar epochs carry no zone and the tool's date fields
// store none either.
func FormatTimestamp(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(TimestampLayout)
}

// HasDate reports whether the file at path already carries a usable capture
// date in any of the consulted tags. Only present values are printed by -s3,
// so any non-empty line other than the zero placeholder means a date exists.
// A tool failure is returned as an error, never as "no date".
func (c *Client) HasDate(ctx context.Context, path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, errors.New("exiftool probe: empty path")
	}
	args := append(append([]string(nil), probeFields...), "-s3", path)
	stdout, stderr, err := c.run(ctx, args)
	if err != nil {
		return false, fmt.Errorf("exiftool probe: %w: %s", err, diagnostic(stdout, stderr))
	}
	for _, line := range strings.Split(string(stdout), "\n") {
		value := strings.TrimSpace(line)
		if value != "" && value != zeroDate {
			return true, nil
		}
	}
	return false, nil
}

// WriteDate stamps the capture-date tags of the file at path with the given
// epoch seconds, overwriting the file in place. Video containers additionally
// receive the media/track create and modify tags so players that read the
// QuickTime atoms see the same moment.
func (c *Client) WriteDate(ctx context.Context, path string, epoch int64, video bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("exiftool write: empty path")
	}
	stamp := FormatTimestamp(epoch)
	args := []string{
		"-overwrite_original",
		"-DateTimeOriginal=" + stamp,
		"-DateTime=" + stamp,
		"-CreateDate=" + stamp,
	}
	if video {
		args = append(args,
			"-MediaCreateDate="+stamp,
			"-MediaModifyDate="+stamp,
			"-TrackCreateDate="+stamp,
			"-TrackModifyDate="+stamp,
		)
	}
	args = append(args, path)
	stdout, stderr, err := c.run(ctx, args)
	if err != nil {
		return fmt.Errorf("exiftool write: %w: %s", err, diagnostic(stdout, stderr))
	}
	return nil
}

// Version reports the installed tool version (the -ver output).
func (c *Client) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.run(ctx, []string{"-ver"})
	if err != nil {
		return "", fmt.Errorf("exiftool version: %w: %s", err, diagnostic(stdout, stderr))
	}
	version := strings.TrimSpace(string(stdout))
	if version == "" {
		return "", errors.New("exiftool version: empty response")
	}
	return version, nil
}

func (c *Client) run(ctx context.Context, args []string) ([]byte, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, c.binary, args)
}

// diagnostic picks the most useful trimmed output for an error message,
// preferring stderr where the tool reports failures.
func diagnostic(stdout, stderr []byte) string {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(stdout))
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
