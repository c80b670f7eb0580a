package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
	"github.com/cristianadrielbraun/qrsheet/internal/style"
)

func TestExportOptions_State(t *testing.T) {
	base := style.DefaultState()

	st, err := exportOptions{URL: "https://go.dev", Top: "Go", Dots: "dots"}.state(base)
	if err != nil {
		t.Fatal(err)
	}
	if st.URL != "https://go.dev" || st.TopCaption != "Go" || st.Dots != qr.DotsDots {
		t.Errorf("flags not applied: %+v", st)
	}
	if st.Corners != base.Corners || st.LogoMode != style.LogoBuiltIn {
		t.Errorf("defaults not kept: %+v", st)
	}

	st, err = exportOptions{NoLogo: true}.state(base)
	if err != nil || st.LogoMode != style.LogoNone {
		t.Errorf("no-logo: mode=%v err=%v", st.LogoMode, err)
	}
}

func TestExportOptions_LogoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="red"/></svg>`
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := exportOptions{Logo: path}.state(style.DefaultState())
	if err != nil {
		t.Fatal(err)
	}
	if st.LogoMode != style.LogoCustom || st.CustomLogo == "" {
		t.Errorf("custom logo not set: mode=%v", st.LogoMode)
	}
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "sheet.pdf")

	opts := exportOptions{Variant: "large", URL: "hello", Top: "Top", Out: out, Renderer: "plain"}
	if err := runExport(t.Context(), "", opts); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Errorf("not a PDF: %q", data[:min(8, len(data))])
	}
}

func TestRunExport_InvalidFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, opts := range []exportOptions{
		{Variant: "poster", Out: "x.pdf"},
		{Variant: "grid", Rows: 20, Out: "x.pdf"},
		{Variant: "grid", Dots: "stars", Out: "x.pdf"},
		{Variant: "grid", Foreground: "#11223344", Out: "x.pdf"},
		{Variant: "grid", URL: strings.Repeat("x", qr.MaxPayloadBytes+1), Out: "x.pdf"},
	} {
		if err := runExport(t.Context(), "", opts); err == nil {
			t.Errorf("%+v: expected error", opts)
		}
	}
}
