// Package export turns the current QR preview into a printable PDF.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrsheet/internal/layout"
	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

// State is the orchestrator's position in one export.
type State int

const (
	StateIdle State = iota
	StateRendering
	StateComposing
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateComposing:
		return "composing"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Variant is the page layout requested by the user.
type Variant string

const (
	VariantGrid  Variant = "grid"
	VariantLarge Variant = "large"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantGrid, VariantLarge:
		return v, nil
	default:
		return "", fmt.Errorf("unknown export variant %q", s)
	}
}

var (
	ErrNoRaster         = errors.New("qr raster unavailable")
	ErrCompose          = errors.New("pdf composition failed")
	ErrPresent          = errors.New("pdf presentation failed")
	ErrExportInProgress = errors.New("export already in progress")
)

// Failure is returned when an export aborts. Notice is what the user was told.
type Failure struct {
	State  State
	Notice Notice
	Err    error
	Cause  error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("export failed while %s: %v: %v", f.State, f.Err, f.Cause)
	}
	return fmt.Sprintf("export failed while %s: %v", f.State, f.Err)
}

func (f *Failure) Unwrap() []error {
	if f.Cause != nil {
		return []error{f.Err, f.Cause}
	}
	return []error{f.Err}
}

var (
	noticeBusy = Notice{
		Title:   "Export already running",
		Message: "Wait for the current PDF to finish before starting another one.",
	}
	noticeNoRaster = Notice{
		Title:   "Export failed",
		Message: "Could not generate the QR image.",
	}
	noticeCompose = Notice{
		Title:   "Export failed",
		Message: "Could not generate the PDF. Check the logs for details.",
	}
)

// RasterSource is the rendering component an export snapshots.
type RasterSource interface {
	ExportRaster(ctx context.Context, format string) (*qr.Raster, error)
	NeedsDecode() bool
}

// Options holds the page format and layout parameters.
type Options struct {
	Orientation string
	Unit        string
	PageFormat  string
	GridRows    int
	GridCols    int
	GridMargin  float64
	LargeMargin float64
}

// DefaultOptions mirrors the printed sheets: A4 portrait in millimeters,
// a 4x4 grid with 10mm margins, a single code with 20mm margins.
func DefaultOptions() Options {
	return Options{
		Orientation: "P",
		Unit:        "mm",
		PageFormat:  "A4",
		GridRows:    4,
		GridCols:    4,
		GridMargin:  10,
		LargeMargin: 20,
	}
}

// Request is one export triggered by the user.
type Request struct {
	// Key serializes exports; one export per key runs at a time.
	Key           string
	Variant       Variant
	TopCaption    string
	BottomCaption string
	// Rows and Cols override the grid size when positive.
	Rows, Cols int
	Source     RasterSource
	Presenter  Presenter
	Notifier   Notifier
}

// Orchestrator runs exports: Idle → Rendering → Composing → Idle, or Failed.
type Orchestrator struct {
	opts        Options
	logger      *logrus.Logger
	newDocument DocumentFactory
	observe     func(key string, s State)
	guard       busyGuard
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDocumentFactory replaces the PDF backend.
func WithDocumentFactory(f DocumentFactory) Option {
	return func(o *Orchestrator) { o.newDocument = f }
}

// WithStateObserver registers a callback invoked on every state change.
func WithStateObserver(f func(key string, s State)) Option {
	return func(o *Orchestrator) { o.observe = f }
}

// New creates an orchestrator.
func New(opts Options, logger *logrus.Logger, options ...Option) *Orchestrator {
	o := &Orchestrator{
		opts:        opts,
		logger:      logger,
		newDocument: NewPDFDocument,
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

// Wait blocks until running exports finish or ctx ends.
func (o *Orchestrator) Wait(ctx context.Context) {
	o.guard.WaitAll(ctx)
}

// Export runs one export to completion. On failure the request's Notifier
// has been told and a *Failure is returned; nothing was presented.
func (o *Orchestrator) Export(ctx context.Context, req Request) error {
	if !o.guard.TryLock(req.Key) {
		req.Notifier.Notify(noticeBusy)
		return ErrExportInProgress
	}
	defer o.guard.Unlock(req.Key)

	log := o.logger.WithFields(logrus.Fields{"key": req.Key, "variant": req.Variant})

	o.transition(log, req.Key, StateRendering)
	raster, err := req.Source.ExportRaster(ctx, "png")
	if err != nil || raster.Empty() {
		return o.fail(log, req, &Failure{State: StateRendering, Notice: noticeNoRaster, Err: ErrNoRaster, Cause: err})
	}

	data, err := o.embeddable(ctx, req.Source, raster)
	if err != nil {
		return o.fail(log, req, &Failure{State: StateRendering, Notice: noticeNoRaster, Err: ErrNoRaster, Cause: err})
	}

	o.transition(log, req.Key, StateComposing)
	doc, err := o.compose(req, data)
	if err != nil {
		return o.fail(log, req, &Failure{State: StateComposing, Notice: noticeCompose, Err: ErrCompose, Cause: err})
	}

	if err := req.Presenter.Present(ctx, doc); err != nil {
		return o.fail(log, req, &Failure{State: StateComposing, Notice: noticeCompose, Err: ErrPresent, Cause: err})
	}

	o.transition(log, req.Key, StateIdle)
	return nil
}

// embeddable returns PNG data for the raster, running the conversion step
// when the source hands out raw images.
func (o *Orchestrator) embeddable(ctx context.Context, src RasterSource, raster *qr.Raster) ([]byte, error) {
	if !src.NeedsDecode() && raster.Embeddable() {
		return raster.Data, nil
	}
	if raster.Image == nil {
		return raster.Data, nil
	}
	return await(ctx, func() ([]byte, error) {
		return qr.EncodePNG(raster.Image)
	})
}

func (o *Orchestrator) compose(req Request, image []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("panic while drawing: %v", r)
		}
	}()

	doc = o.newDocument(o.opts.Orientation, o.opts.Unit, o.opts.PageFormat)
	width, height := doc.PageSize()

	placements, err := layout.Compute(o.spec(req, width, height), layout.Captions{
		Top:    req.TopCaption,
		Bottom: req.BottomCaption,
	})
	if err != nil {
		return nil, err
	}

	for _, p := range placements {
		if p.Border != nil {
			doc.SetDrawGray(200)
			doc.DrawRect(*p.Border)
		}
		doc.SetFontSize(p.FontSize)
		if p.Top.Text != "" {
			doc.DrawText(p.Top.Text, p.Top.X, p.Top.Y)
		}
		doc.DrawImage("qr", image, "PNG", p.Image)
		if p.Bottom.Text != "" {
			doc.DrawText(p.Bottom.Text, p.Bottom.X, p.Bottom.Y)
		}
	}

	if err := doc.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (o *Orchestrator) spec(req Request, width, height float64) layout.Spec {
	if req.Variant == VariantLarge {
		return layout.Spec{Kind: layout.Large, PageWidth: width, PageHeight: height, Margin: o.opts.LargeMargin}
	}
	rows, cols := o.opts.GridRows, o.opts.GridCols
	if req.Rows > 0 {
		rows = req.Rows
	}
	if req.Cols > 0 {
		cols = req.Cols
	}
	return layout.Spec{Kind: layout.Grid, PageWidth: width, PageHeight: height, Margin: o.opts.GridMargin, Rows: rows, Cols: cols}
}

func (o *Orchestrator) transition(log *logrus.Entry, key string, s State) {
	log.Debugf("Export state -> %s", s)
	if o.observe != nil {
		o.observe(key, s)
	}
}

func (o *Orchestrator) fail(log *logrus.Entry, req Request, f *Failure) error {
	log.WithError(f).Error("Export aborted")
	o.transition(log, req.Key, StateFailed)
	req.Notifier.Notify(f.Notice)
	return f
}

// await runs fn on its own goroutine and waits for it or for ctx.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-done:
		return res.v, res.err
	}
}
