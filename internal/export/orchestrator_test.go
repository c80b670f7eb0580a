package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrsheet/internal/layout"
	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

type recordingDoc struct {
	w, h    float64
	rects   []layout.Rect
	texts   []string
	images  []layout.Rect
	gray    []int
	panicOn string
}

func (d *recordingDoc) PageSize() (float64, float64) { return d.w, d.h }
func (d *recordingDoc) SetDrawGray(level int)        { d.gray = append(d.gray, level) }
func (d *recordingDoc) SetFontSize(float64)          {}
func (d *recordingDoc) DrawRect(r layout.Rect)       { d.rects = append(d.rects, r) }
func (d *recordingDoc) DrawText(txt string, _, _ float64) {
	if txt == d.panicOn {
		panic("font missing")
	}
	d.texts = append(d.texts, txt)
}
func (d *recordingDoc) DrawImage(_ string, _ []byte, _ string, r layout.Rect) {
	d.images = append(d.images, r)
}
func (d *recordingDoc) Err() error { return nil }
func (d *recordingDoc) Output(w io.Writer) error {
	_, err := w.Write([]byte("%PDF-fake"))
	return err
}

type fakeSource struct {
	raster  *qr.Raster
	err     error
	decode  bool
	started chan struct{}
	block   chan struct{}
}

func (s *fakeSource) ExportRaster(ctx context.Context, _ string) (*qr.Raster, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.raster, s.err
}

func (s *fakeSource) NeedsDecode() bool { return s.decode }

type capturePresenter struct {
	docs []Document
	err  error
}

func (p *capturePresenter) Present(_ context.Context, doc Document) error {
	p.docs = append(p.docs, doc)
	return p.err
}

type captureNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *captureNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func pngRaster(t *testing.T) *qr.Raster {
	t.Helper()
	data, err := qr.EncodePNG(solidImage(32))
	if err != nil {
		t.Fatal(err)
	}
	return &qr.Raster{Data: data}
}

func solidImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func newTestOrchestrator(doc *recordingDoc, opts ...Option) *Orchestrator {
	opts = append([]Option{WithDocumentFactory(func(_, _, _ string) Document { return doc })}, opts...)
	return New(DefaultOptions(), testLogger(), opts...)
}

func TestExport_GridSuccess(t *testing.T) {
	doc := &recordingDoc{w: 210, h: 297}
	o := newTestOrchestrator(doc)
	presenter := &capturePresenter{}
	notifier := &captureNotifier{}

	err := o.Export(t.Context(), Request{
		Key:           "s1",
		Variant:       VariantGrid,
		TopCaption:    "Scan me",
		BottomCaption: "example.com",
		Source:        &fakeSource{raster: pngRaster(t)},
		Presenter:     presenter,
		Notifier:      notifier,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(presenter.docs) != 1 {
		t.Fatalf("presented %d documents, want 1", len(presenter.docs))
	}
	if notifier.count() != 0 {
		t.Errorf("unexpected notices: %+v", notifier.notices)
	}
	if len(doc.images) != 16 || len(doc.rects) != 16 {
		t.Errorf("images=%d rects=%d, want 16 each", len(doc.images), len(doc.rects))
	}
	if len(doc.texts) != 32 {
		t.Errorf("texts=%d, want 32", len(doc.texts))
	}
	for _, g := range doc.gray {
		if g != 200 {
			t.Fatalf("border gray = %d, want 200", g)
		}
	}
}

func TestExport_LargeSkipsEmptyCaptions(t *testing.T) {
	doc := &recordingDoc{w: 210, h: 297}
	o := newTestOrchestrator(doc)

	err := o.Export(t.Context(), Request{
		Key:        "s1",
		Variant:    VariantLarge,
		TopCaption: "only top",
		Source:     &fakeSource{raster: pngRaster(t)},
		Presenter:  &capturePresenter{},
		Notifier:   &captureNotifier{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.images) != 1 || len(doc.rects) != 0 {
		t.Errorf("images=%d rects=%d, want 1 and 0", len(doc.images), len(doc.rects))
	}
	if len(doc.texts) != 1 || doc.texts[0] != "only top" {
		t.Errorf("texts = %v", doc.texts)
	}
	if got := doc.images[0]; got.W != 170 {
		t.Errorf("large qr width = %v, want 170", got.W)
	}
}

func TestExport_GridOverride(t *testing.T) {
	doc := &recordingDoc{w: 210, h: 297}
	o := newTestOrchestrator(doc)
	err := o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantGrid, Rows: 2, Cols: 3,
		Source:    &fakeSource{raster: pngRaster(t)},
		Presenter: &capturePresenter{},
		Notifier:  &captureNotifier{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.images) != 6 {
		t.Errorf("images = %d, want 6", len(doc.images))
	}
}

func TestExport_NoRaster(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{"nil raster", &fakeSource{}},
		{"empty raster", &fakeSource{raster: &qr.Raster{}}},
		{"render error", &fakeSource{err: errors.New("encoder failed")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &recordingDoc{w: 210, h: 297}
			o := newTestOrchestrator(doc)
			presenter := &capturePresenter{}
			notifier := &captureNotifier{}

			err := o.Export(t.Context(), Request{
				Key: "s1", Variant: VariantGrid,
				Source: tt.src, Presenter: presenter, Notifier: notifier,
			})
			if !errors.Is(err, ErrNoRaster) {
				t.Fatalf("err = %v, want ErrNoRaster", err)
			}
			var f *Failure
			if !errors.As(err, &f) || f.State != StateRendering {
				t.Errorf("failure = %+v", f)
			}
			if len(presenter.docs) != 0 {
				t.Error("document presented after failure")
			}
			if notifier.count() != 1 || notifier.notices[0] != noticeNoRaster {
				t.Errorf("notices = %+v", notifier.notices)
			}
		})
	}
}

func TestExport_RawImageIsConverted(t *testing.T) {
	doc := &recordingDoc{w: 210, h: 297}
	var embedded []byte
	o := New(DefaultOptions(), testLogger(), WithDocumentFactory(func(_, _, _ string) Document {
		return &imageCapture{recordingDoc: doc, data: &embedded}
	}))

	err := o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantLarge,
		Source:    &fakeSource{raster: &qr.Raster{Image: solidImage(16)}, decode: true},
		Presenter: &capturePresenter{},
		Notifier:  &captureNotifier{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(embedded, []byte("\x89PNG")) {
		t.Errorf("embedded data is not PNG: % x", embedded[:min(8, len(embedded))])
	}
}

type imageCapture struct {
	*recordingDoc
	data *[]byte
}

func (d *imageCapture) DrawImage(name string, data []byte, format string, r layout.Rect) {
	*d.data = data
	d.recordingDoc.DrawImage(name, data, format, r)
}

func TestExport_ComposePanicRecovered(t *testing.T) {
	doc := &recordingDoc{w: 210, h: 297, panicOn: "boom"}
	o := newTestOrchestrator(doc)
	presenter := &capturePresenter{}
	notifier := &captureNotifier{}

	err := o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantLarge, TopCaption: "boom",
		Source: &fakeSource{raster: pngRaster(t)}, Presenter: presenter, Notifier: notifier,
	})
	if !errors.Is(err, ErrCompose) {
		t.Fatalf("err = %v, want ErrCompose", err)
	}
	if len(presenter.docs) != 0 {
		t.Error("document presented after compose failure")
	}
	if notifier.count() != 1 || notifier.notices[0] != noticeCompose {
		t.Errorf("notices = %+v", notifier.notices)
	}
}

func TestExport_PresentError(t *testing.T) {
	o := newTestOrchestrator(&recordingDoc{w: 210, h: 297})
	err := o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantLarge,
		Source:    &fakeSource{raster: pngRaster(t)},
		Presenter: &capturePresenter{err: errors.New("disk full")},
		Notifier:  &captureNotifier{},
	})
	if !errors.Is(err, ErrPresent) {
		t.Fatalf("err = %v, want ErrPresent", err)
	}
}

func TestExport_StateSequence(t *testing.T) {
	var mu sync.Mutex
	var states []State
	observe := func(_ string, s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	}

	o := newTestOrchestrator(&recordingDoc{w: 210, h: 297}, WithStateObserver(observe))
	_ = o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantGrid,
		Source: &fakeSource{raster: pngRaster(t)}, Presenter: &capturePresenter{}, Notifier: &captureNotifier{},
	})
	_ = o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantGrid,
		Source: &fakeSource{}, Presenter: &capturePresenter{}, Notifier: &captureNotifier{},
	})

	want := []State{StateRendering, StateComposing, StateIdle, StateRendering, StateFailed}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
}

func TestExport_BusyKeyRejected(t *testing.T) {
	o := newTestOrchestrator(&recordingDoc{w: 210, h: 297})
	src := &fakeSource{raster: pngRaster(t), started: make(chan struct{}), block: make(chan struct{})}
	first := make(chan error, 1)
	go func() {
		first <- o.Export(context.Background(), Request{
			Key: "s1", Variant: VariantGrid,
			Source: src, Presenter: &capturePresenter{}, Notifier: &captureNotifier{},
		})
	}()

	<-src.started

	notifier := &captureNotifier{}
	err := o.Export(t.Context(), Request{
		Key: "s1", Variant: VariantGrid,
		Source: &fakeSource{raster: pngRaster(t)}, Presenter: &capturePresenter{}, Notifier: notifier,
	})
	if !errors.Is(err, ErrExportInProgress) {
		t.Fatalf("err = %v, want ErrExportInProgress", err)
	}
	if notifier.count() != 1 || notifier.notices[0] != noticeBusy {
		t.Errorf("notices = %+v", notifier.notices)
	}

	// Other keys are independent.
	if err := o.Export(t.Context(), Request{
		Key: "s2", Variant: VariantGrid,
		Source: &fakeSource{raster: pngRaster(t)}, Presenter: &capturePresenter{}, Notifier: &captureNotifier{},
	}); err != nil {
		t.Errorf("export for another key: %v", err)
	}

	close(src.block)
	if err := <-first; err != nil {
		t.Fatalf("first export: %v", err)
	}
	o.Wait(t.Context())
}

func TestParseVariant(t *testing.T) {
	for _, s := range []string{"grid", "large"} {
		if v, err := ParseVariant(s); err != nil || string(v) != s {
			t.Errorf("ParseVariant(%q) = %q, %v", s, v, err)
		}
	}
	if _, err := ParseVariant("poster"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestExport_RealPDF(t *testing.T) {
	renderer, err := qr.NewRenderer(qr.KindStyled)
	if err != nil {
		t.Fatal(err)
	}
	canvas := qr.NewCanvas(renderer, 256, 256)
	canvas.Update(qr.Config{
		Payload:    "https://example.com",
		Dots:       qr.DotsRounded,
		Corners:    qr.CornersExtraRounded,
		Foreground: qr.DefaultForeground,
		Background: qr.DefaultBackground,
	})

	out := filepath.Join(t.TempDir(), "out", "sheet.pdf")
	o := New(DefaultOptions(), testLogger())
	err = o.Export(t.Context(), Request{
		Key:           "cli",
		Variant:       VariantGrid,
		TopCaption:    "Scan me",
		BottomCaption: "Café",
		Source:        canvas,
		Presenter:     FilePresenter{Path: out},
		Notifier:      LogNotifier{Logger: testLogger()},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", data[:min(8, len(data))])
	}
}
