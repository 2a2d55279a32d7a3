package render

import (
	"math"

	"github.com/fogleman/gg"
)

// ============================================================
// PNG raster
// ============================================================

// rasterize рисует кадр на gg.Context. Порядок слоев совпадает с SVG.
func rasterize(f Frame, fonts *Fonts) *gg.Context {
	dc := gg.NewContext(pixels(f.Size.Width), pixels(f.Size.Height))

	dc.SetColor(f.Background)
	dc.Clear()

	dc.SetColor(f.RoomFill)
	dc.DrawRectangle(f.Origin.X, f.Origin.Y, f.Room.Width, f.Room.Height)
	dc.Fill()

	drawLines(dc, f.Grid, f.GridStroke)
	drawLines(dc, f.Rulers, f.RulerStroke)
	for _, t := range f.RulerLabels {
		drawText(dc, fonts, t)
	}

	dc.SetColor(f.Border.Color)
	dc.SetLineWidth(f.Border.Width)
	dc.DrawRectangle(f.Origin.X, f.Origin.Y, f.Room.Width, f.Room.Height)
	dc.Stroke()

	for _, t := range f.Dimensions {
		drawText(dc, fonts, t)
	}

	for _, shape := range f.Tables {
		drawTable(dc, fonts, shape)
	}

	if f.Title != nil {
		drawText(dc, fonts, *f.Title)
	}
	return dc
}

func drawLines(dc *gg.Context, lines []Line, stroke Stroke) {
	if len(lines) == 0 {
		return
	}
	dc.SetColor(stroke.Color)
	dc.SetLineWidth(stroke.Width)
	for _, l := range lines {
		dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
		dc.Stroke()
	}
}

func drawTable(dc *gg.Context, fonts *Fonts, shape TableShape) {
	if len(shape.Polygon) == 0 {
		return
	}

	dc.NewSubPath()
	dc.MoveTo(shape.Polygon[0].X, shape.Polygon[0].Y)
	for _, p := range shape.Polygon[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()

	dc.SetColor(shape.Fill)
	dc.FillPreserve()
	dc.SetColor(shape.Edge.Color)
	dc.SetLineWidth(shape.Edge.Width)
	dc.Stroke()

	for _, t := range shape.Labels {
		drawText(dc, fonts, t)
	}
}

func drawText(dc *gg.Context, fonts *Fonts, t Text) {
	if t.Value == "" {
		return
	}

	dc.Push()
	defer dc.Pop()

	if t.Rotate != 0 {
		dc.RotateAbout(gg.Radians(t.Rotate), t.At.X, t.At.Y)
	}

	if t.Plate.Width > 0 && t.Plate.Height > 0 {
		dc.SetColor(colorPlate)
		dc.DrawRectangle(t.At.X-t.Plate.Width/2, t.At.Y-t.Plate.Height/2, t.Plate.Width, t.Plate.Height)
		dc.Fill()
	}

	ax := 0.5
	if t.Align == AlignRight {
		ax = 1
	}
	dc.SetFontFace(fonts.Face(t.Size, t.Bold))
	dc.SetColor(t.Color)
	dc.DrawStringAnchored(t.Value, t.At.X, t.At.Y, ax, 0.5)
}

func pixels(v float64) int {
	return int(math.Max(1, math.Ceil(v)))
}
