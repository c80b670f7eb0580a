package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(t.Context(), &buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestSelect(t *testing.T) {
	html := render(t, Select(SelectProps{
		ID: "dots", Name: "dots", Label: "Dots",
		Options:  []Option{{Value: "square", Label: "Square"}, {Value: "rounded", Label: "Rounded"}},
		Selected: "rounded",
	}))
	for _, want := range []string{`<select id="dots" name="dots"`, `<option value="square">Square</option>`, `<option value="rounded" selected>Rounded</option>`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}

func TestField(t *testing.T) {
	html := render(t, Field(FieldProps{ID: "top", Name: "top", Label: "Top", Value: `"Scan" <me>`}))
	if !strings.Contains(html, `type="text"`) || !strings.Contains(html, `value="&#34;Scan&#34; &lt;me&gt;"`) {
		t.Errorf("text field = %s", html)
	}

	html = render(t, Field(FieldProps{ID: "logo", Name: "logo", Type: "file", Value: "ignored", Accept: "image/png"}))
	if strings.Contains(html, "value=") || !strings.Contains(html, `accept="image/png"`) {
		t.Errorf("file field = %s", html)
	}
}

func TestCheckboxAndButton(t *testing.T) {
	if html := render(t, Checkbox(CheckboxProps{ID: "builtin_logo", Name: "enabled", Checked: true})); !strings.Contains(html, " checked>") {
		t.Errorf("checkbox = %s", html)
	}
	html := render(t, Button(ButtonProps{ID: "go", Label: "Go", Variant: "secondary", Attrs: templ.Attributes{"data-export": "grid"}}))
	if !strings.Contains(html, `data-export="grid"`) || !strings.Contains(html, "bg-white") {
		t.Errorf("button = %s", html)
	}
}
