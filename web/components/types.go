package components

import "github.com/a-h/templ"

// Option is one entry of a Select.
type Option struct {
	Value string
	Label string
}

// SelectProps configures a labelled select box.
type SelectProps struct {
	ID       string
	Name     string
	Label    string
	Options  []Option
	Selected string
	Class    string
}

// FieldProps configures a labelled input.
type FieldProps struct {
	ID          string
	Name        string
	Label       string
	Type        string // text, url, color, file
	Value       string
	Placeholder string
	Accept      string
	Class       string
}

// CheckboxProps configures a labelled checkbox.
type CheckboxProps struct {
	ID      string
	Name    string
	Label   string
	Checked bool
}

// ButtonProps configures a button.
type ButtonProps struct {
	ID      string
	Label   string
	Variant string // primary or secondary
	Attrs   templ.Attributes
	Class   string
}
