package imagex

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"
)

// Signature pad canvas size.
const (
	signatureWidth  = 800
	signatureHeight = 400
)

// SignaturePad accumulates pen strokes on a fixed white canvas. Strokes are
// stamped as round-capped segments so the trace stays smooth regardless of
// sampling rate. Safe for concurrent use.
type SignaturePad struct {
	mu      sync.Mutex
	canvas  *image.NRGBA
	ink     color.NRGBA
	width   float64
	last    image.Point
	drawing bool
}

func NewSignaturePad(ink color.NRGBA, strokeWidth float64) *SignaturePad {
	if strokeWidth <= 0 {
		strokeWidth = 3
	}
	p := &SignaturePad{ink: ink, width: strokeWidth}
	p.reset()
	return p
}

func (p *SignaturePad) reset() {
	p.canvas = image.NewNRGBA(image.Rect(0, 0, signatureWidth, signatureHeight))
	draw.Draw(p.canvas, p.canvas.Bounds(),
		image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)
}

// Begin starts a stroke at (x, y).
func (p *SignaturePad) Begin(x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = image.Pt(x, y)
	p.drawing = true
	p.stampLocked(float64(x), float64(y))
}

// LineTo extends the current stroke to (x, y). Calls before Begin are
// ignored.
func (p *SignaturePad) LineTo(x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.drawing {
		return
	}

	x0, y0 := float64(p.last.X), float64(p.last.Y)
	x1, y1 := float64(x), float64(y)
	dist := math.Hypot(x1-x0, y1-y0)
	steps := int(dist) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.stampLocked(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
	p.last = image.Pt(x, y)
}

// End finishes the current stroke.
func (p *SignaturePad) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drawing = false
}

// Clear wipes the canvas back to white.
func (p *SignaturePad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	p.drawing = false
}

// Image returns a copy of the current canvas.
func (p *SignaturePad) Image() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := image.NewNRGBA(p.canvas.Bounds())
	copy(out.Pix, p.canvas.Pix)
	return out
}

// stampLocked draws a filled disc of the stroke radius at (cx, cy).
func (p *SignaturePad) stampLocked(cx, cy float64) {
	r := p.width / 2
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x < 0 || y < 0 || x >= signatureWidth || y >= signatureHeight {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				p.canvas.SetNRGBA(x, y, p.ink)
			}
		}
	}
}
