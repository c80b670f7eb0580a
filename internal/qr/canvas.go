package qr

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Canvas is the rendering component behind one preview: it holds the
// configuration last pushed with Update and renders it on demand.
// Renders are never cached; every call starts from the current Config.
type Canvas struct {
	mu       sync.RWMutex
	cfg      Config
	revision uint64

	renderer    Renderer
	previewSize int
	exportSize  int
}

// NewCanvas binds renderer to a fresh canvas.
func NewCanvas(renderer Renderer, previewSize, exportSize int) *Canvas {
	return &Canvas{
		renderer:    renderer,
		previewSize: previewSize,
		exportSize:  exportSize,
		cfg: Config{
			Payload:    " ",
			Dots:       DotsSquare,
			Corners:    CornersSquare,
			Foreground: DefaultForeground,
			Background: DefaultBackground,
		},
	}
}

// Update replaces the configuration and returns the canvas revision, which
// only changes when cfg differs from the current one.
func (c *Canvas) Update(cfg Config) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg != c.cfg {
		c.cfg = cfg
		c.revision++
	}
	return c.revision
}

// Config returns the current configuration.
func (c *Canvas) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Revision returns the number of effective updates so far.
func (c *Canvas) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// PreviewSize is the default on-screen size in pixels.
func (c *Canvas) PreviewSize() int { return c.previewSize }

// ExportSize is the raster size used for exports and downloads.
func (c *Canvas) ExportSize() int { return c.exportSize }

// RenderTo renders the current configuration at size pixels and writes it
// to w as "png" or "jpg".
func (c *Canvas) RenderTo(w io.Writer, format string, size int) error {
	cfg := c.Config()
	if size <= 0 {
		size = c.previewSize
	}
	raster, err := c.renderer.Render(cfg, size)
	if err != nil {
		return err
	}

	switch format {
	case "png":
		if raster.Embeddable() {
			_, err = w.Write(raster.Data)
			return err
		}
		data, err := EncodePNG(raster.Image)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "jpg":
		img, err := raster.Decoded()
		if err != nil {
			return err
		}
		return encodeJPEG(w, img, cfg.Background)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ExportRaster renders the current configuration at export size. Rendering
// runs on its own goroutine; ctx bounds the wait. A nil raster with a nil
// error means the renderer produced nothing.
func (c *Canvas) ExportRaster(ctx context.Context, format string) (*Raster, error) {
	if format != "png" {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	cfg := c.Config()

	type result struct {
		raster *Raster
		err    error
	}
	done := make(chan result, 1)
	go func() {
		raster, err := c.renderer.Render(cfg, c.exportSize)
		done <- result{raster, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.raster, res.err
	}
}

// NeedsDecode reports whether exported rasters need a conversion step.
func (c *Canvas) NeedsDecode() bool {
	return c.renderer.NeedsDecode()
}
