// Package chrome rasterises an SVG document by screenshotting it in headless Chrome.
package chrome

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds browser start-up plus the screenshot.
const DefaultTimeout = 30 * time.Second

// ErrEmptyScreenshot is returned when Chrome hands back no image data.
var ErrEmptyScreenshot = errors.New("screenshot buffer is empty")

// Document is an SVG with its pixel size, used for the browser viewport.
type Document struct {
	SVG    string
	Width  int
	Height int
}

// Options tunes one Rasterize call. A zero Timeout means DefaultTimeout.
type Options struct {
	Timeout time.Duration
	Logger  *log.Logger
	// ExecPath overrides chromedp's browser discovery.
	ExecPath string
}

// Rasterize writes doc as "png" or "jpeg" to w.
func Rasterize(ctx context.Context, doc Document, format string, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	switch format {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("unsupported image format %q for chrome engine", format)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Loading from a data URI avoids a temp file.
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(doc.SVG))
	logger.Debug("Created data URI for SVG", "bytes", len(dataURI))

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var screenshot []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(max(doc.Width, 1)), int64(max(doc.Height, 1))),
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshot, chromedp.ByQuery),
	}

	logger.Debug("Running chromedp tasks (navigate and screenshot)")
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(screenshot) == 0 {
		return ErrEmptyScreenshot
	}

	reader := bytes.NewReader(screenshot)
	switch format {
	case "png":
		// Screenshots are already PNG.
		if _, err := io.Copy(w, reader); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	default:
		img, err := png.Decode(reader)
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", err)
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	}

	logger.Debug("Encoded image using chromedp", "format", strings.ToUpper(format))
	return nil
}
