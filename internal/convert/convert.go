package convert

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"tafel/internal/config"
)

// CommandRunner executes an external command and returns its combined output.
// Injectable so tests can run without ImageMagick installed.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Converter turns source scans into web-ready assets via ImageMagick.
type Converter struct {
	cfg    config.Convert
	runner CommandRunner
}

// New creates a converter from conversion config.
func New(cfg config.Convert) *Converter {
	return &Converter{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Converter) WithCommandRunner(runner CommandRunner) {
	c.runner = runner
}

// Convert encodes src into the configured web format at dst and reports the
// final pixel dimensions. Orientation metadata is applied before any
// measurement or resize; images wider than the configured maximum are
// downscaled proportionally, narrower ones pass through unscaled; alpha is
// flattened onto white when the target format cannot represent it.
func (c *Converter) Convert(ctx context.Context, src, dst string) (int, int, error) {
	if _, err := c.run(ctx, c.cfg.Binary, c.convertArgs(src, dst)...); err != nil {
		return 0, 0, fmt.Errorf("convert %s: %w", src, err)
	}

	name, args := c.identifyCommand(dst)
	out, err := c.run(ctx, name, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("identify %s: %w", dst, err)
	}
	var width, height int
	if _, err := fmt.Sscanf(strings.TrimSpace(out), "%d %d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("identify %s: unexpected output %q", dst, out)
	}
	return width, height, nil
}

func (c *Converter) convertArgs(src, dst string) []string {
	args := []string{
		src,
		"-auto-orient",
		// ">" restricts the resize to images wider than the bound, so
		// smaller scans pass through untouched.
		"-resize", fmt.Sprintf("%dx>", c.cfg.MaxWidth),
	}
	switch c.cfg.Format {
	case "webp":
		args = append(args,
			"-quality", fmt.Sprintf("%d", c.cfg.WebPQuality),
			"-define", "webp:method=6",
		)
	case "jpg", "jpeg":
		// JPEG has no alpha channel; flatten onto a white background.
		args = append(args,
			"-background", "white",
			"-flatten",
			"-quality", fmt.Sprintf("%d", c.cfg.JPEGQuality),
			"-interlace", "Plane",
		)
	case "png":
		if c.cfg.PNGOptimize {
			args = append(args,
				"-strip",
				"-define", "png:compression-level=9",
			)
		}
	}
	return append(args, dst)
}

func (c *Converter) identifyCommand(path string) (string, []string) {
	args := []string{"-format", "%w %h", path}
	// ImageMagick 7 exposes identify as a subcommand of the magick entry
	// point; ImageMagick 6 ships it as a separate binary.
	if c.cfg.Binary == "magick" {
		return c.cfg.Binary, append([]string{"identify"}, args...)
	}
	return "identify", args
}

func (c *Converter) run(ctx context.Context, name string, args ...string) (string, error) {
	if c.runner != nil {
		return c.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
