// Package toast renders transient notification cards.
package toast

import twmerge "github.com/Oudwins/tailwind-merge-go"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionTopLeft      Position = "top-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionTopCenter    Position = "top-center"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID            string
	Class         string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds; 0 keeps the toast until dismissed
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

var positionClasses = map[Position]string{
	PositionTopRight:     "top-4 right-4",
	PositionTopLeft:      "top-4 left-4",
	PositionBottomRight:  "bottom-4 right-4",
	PositionBottomLeft:   "bottom-4 left-4",
	PositionTopCenter:    "top-4 left-1/2 -translate-x-1/2",
	PositionBottomCenter: "bottom-4 left-1/2 -translate-x-1/2",
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-gray-200 bg-white text-gray-900",
	VariantSuccess: "border-green-200 bg-green-50 text-green-900",
	VariantError:   "border-red-200 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-200 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-200 bg-blue-50 text-blue-900",
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "✕",
	VariantWarning: "!",
	VariantInfo:    "i",
}

func (p Props) class() string {
	variant := p.Variant
	if variant == "" {
		variant = VariantDefault
	}
	position := p.Position
	if position == "" {
		position = PositionBottomRight
	}
	return twmerge.Merge(
		"fixed z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg",
		positionClasses[position],
		variantClasses[variant],
		p.Class,
	)
}

func (p Props) icon() string {
	if !p.Icon {
		return ""
	}
	return icons[p.Variant]
}
