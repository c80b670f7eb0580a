package qr

import (
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

// styledShape implements standard.IShape with separate drawers for data
// modules and finder modules, so dots and corners can be styled independently.
type styledShape struct {
	drawDot    func(ctx *standard.DrawContext)
	drawFinder func(ctx *standard.DrawContext)
}

func newShape(dots DotStyle, corners CornerStyle) *styledShape {
	return &styledShape{
		drawDot:    dotDrawer(dots),
		drawFinder: cornerDrawer(corners),
	}
}

// Draw implements the IShape interface
func (s *styledShape) Draw(ctx *standard.DrawContext) {
	s.drawDot(ctx)
}

// DrawFinder implements the IShape interface for finder patterns
func (s *styledShape) DrawFinder(ctx *standard.DrawContext) {
	s.drawFinder(ctx)
}

func dotDrawer(d DotStyle) func(ctx *standard.DrawContext) {
	switch d {
	case DotsDots:
		return circleBlock()
	case DotsRounded:
		return roundedBlock(0.3)
	case DotsExtraRounded:
		return shapes.LiquidBlock()
	case DotsChain:
		return shapes.ChainBlock()
	case DotsHStripe:
		return shapes.HStripeBlock(0.85)
	case DotsVStripe:
		return shapes.VStripeBlock(0.85)
	default:
		return squareBlock()
	}
}

func cornerDrawer(c CornerStyle) func(ctx *standard.DrawContext) {
	switch c {
	case CornersDot:
		return circleBlock()
	case CornersExtraRounded:
		return roundedBlock(0.45)
	default:
		return squareBlock()
	}
}

func squareBlock() func(ctx *standard.DrawContext) {
	return func(ctx *standard.DrawContext) {
		x, y := ctx.UpperLeft()
		w, h := ctx.Edge()
		ctx.DrawRectangle(x, y, float64(w), float64(h))
		ctx.SetColor(ctx.Color())
		ctx.Fill()
	}
}

func circleBlock() func(ctx *standard.DrawContext) {
	return func(ctx *standard.DrawContext) {
		x, y := ctx.UpperLeft()
		w, h := ctx.Edge()
		r := float64(w) / 2
		ctx.DrawCircle(x+r, y+float64(h)/2, r)
		ctx.SetColor(ctx.Color())
		ctx.Fill()
	}
}

// roundedBlock draws a square whose corner radius is ratio × edge.
func roundedBlock(ratio float64) func(ctx *standard.DrawContext) {
	return func(ctx *standard.DrawContext) {
		x, y := ctx.UpperLeft()
		w, h := ctx.Edge()
		ctx.DrawRoundedRectangle(x, y, float64(w), float64(h), ratio*float64(w))
		ctx.SetColor(ctx.Color())
		ctx.Fill()
	}
}
