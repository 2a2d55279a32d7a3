package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// ============================================================
// SVG export
// ============================================================

// writeSVG выводит тот же кадр, что и растр. Координаты svgo целые, округляем.
func writeSVG(w io.Writer, f Frame) {
	canvas := svg.New(w)
	width, height := pixels(f.Size.Width), pixels(f.Size.Height)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))

	canvas.Rect(0, 0, width, height, "fill:"+css(f.Background))
	canvas.Rect(round(f.Origin.X), round(f.Origin.Y), round(f.Room.Width), round(f.Room.Height), "fill:"+css(f.RoomFill))

	svgLines(canvas, "grid", f.Grid, f.GridStroke)
	svgLines(canvas, "rulers", f.Rulers, f.RulerStroke)
	for _, t := range f.RulerLabels {
		svgText(canvas, t)
	}

	canvas.Rect(round(f.Origin.X), round(f.Origin.Y), round(f.Room.Width), round(f.Room.Height),
		"fill:none;"+strokeStyle(f.Border))

	for _, t := range f.Dimensions {
		svgText(canvas, t)
	}

	for _, shape := range f.Tables {
		svgTable(canvas, shape)
	}

	if f.Title != nil {
		svgText(canvas, *f.Title)
	}
	canvas.End()
}

// ============================================================
// Element renderers
// ============================================================

func svgLines(canvas *svg.SVG, id string, lines []Line, stroke Stroke) {
	if len(lines) == 0 {
		return
	}
	canvas.Gid(id)
	for _, l := range lines {
		canvas.Line(round(l.From.X), round(l.From.Y), round(l.To.X), round(l.To.Y), strokeStyle(stroke))
	}
	canvas.Gend()
}

func svgTable(canvas *svg.SVG, shape TableShape) {
	xs := make([]int, len(shape.Polygon))
	ys := make([]int, len(shape.Polygon))
	for i, p := range shape.Polygon {
		xs[i] = round(p.X)
		ys[i] = round(p.Y)
	}

	canvas.Gid("table-" + strconv.Itoa(shape.ID))
	canvas.Polygon(xs, ys, "fill:"+css(shape.Fill)+";"+strokeStyle(shape.Edge))
	for _, t := range shape.Labels {
		svgText(canvas, t)
	}
	canvas.Gend()
}

func svgText(canvas *svg.SVG, t Text) {
	if t.Value == "" {
		return
	}

	x, y := round(t.At.X), round(t.At.Y)
	if t.Rotate != 0 {
		canvas.Gtransform(fmt.Sprintf("rotate(%s %d %d)", formatFloat(t.Rotate), x, y))
		defer canvas.Gend()
	}

	if t.Plate.Width > 0 && t.Plate.Height > 0 {
		canvas.Rect(round(t.At.X-t.Plate.Width/2), round(t.At.Y-t.Plate.Height/2),
			round(t.Plate.Width), round(t.Plate.Height), "fill:"+css(colorPlate))
	}

	anchor := "middle"
	if t.Align == AlignRight {
		anchor = "end"
	}
	weight := "normal"
	if t.Bold {
		weight = "bold"
	}
	canvas.Text(x, y, t.Value, fmt.Sprintf(
		"text-anchor:%s;dominant-baseline:middle;font-family:Go,Arial,sans-serif;font-size:%spx;font-weight:%s;fill:%s",
		anchor, formatFloat(t.Size), weight, css(t.Color)))
}

// ============================================================
// Formatting helpers
// ============================================================

func strokeStyle(s Stroke) string {
	return "stroke:" + css(s.Color) + ";stroke-width:" + formatFloat(s.Width)
}

func css(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatFloat(math.Round(float64(c.A)/255*100)/100))
}

func round(v float64) int {
	return int(math.Round(v))
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
