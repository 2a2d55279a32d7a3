package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"floorplanner/internal/planner/geometry"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/scene"
)

// ============================================================
// Layout constants
// ============================================================

const (
	ExportPadding = 60.0
	ExportTitle   = "Floor Plan"

	titleFontSize = 24.0
	titleBaseline = 30.0

	rulerEvery     = 5.0
	rulerTick      = 10.0
	rulerLabelGap  = 20.0
	rulerSideShift = 15.0
	rulerFontSize  = 10.0

	tableStrokeWidth  = 3.0
	exportBorderWidth = 3.0
	exportDimOffset   = 30.0
	exportNameShift   = 8.0

	// MaxCanvasPixels предел площади поверхности (~200 МБ RGBA).
	MaxCanvasPixels = 50_000_000
)

var ErrCanvasTooLarge = errors.New("canvas too large")

var (
	colorWhite      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorRoom       = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	colorGrid       = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	colorBorder     = color.NRGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	colorRulerTick  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	colorRulerText  = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	colorText       = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	colorPlate      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xf2}
	colorTableFill  = color.NRGBA{R: 0x48, G: 0xbb, B: 0x78, A: 0xff}
	colorTableEdge  = color.NRGBA{R: 0x2d, G: 0x7a, B: 0x4f, A: 0xff}
	colorTableLabel = colorWhite
)

// Mode какую поверхность строим.
type Mode int

const (
	// Live видимый холст: линейка, плашки под размерами, адаптивная сетка.
	Live Mode = iota
	// Export офлайн-поверхность: поля, заголовок, без линеек.
	Export
)

// ============================================================
// Frame
// ============================================================

type Line struct {
	From models.Point
	To   models.Point
}

type Align int

const (
	AlignCenter Align = iota
	AlignRight
)

// Text надпись с якорем по центру строки. Rotate (градусы) вокруг At.
// Plate ненулевой размер рисуется подложкой с центром в At, поворачивается вместе с текстом.
type Text struct {
	Value  string
	At     models.Point
	Size   float64
	Bold   bool
	Rotate float64
	Align  Align
	Color  color.NRGBA
	Plate  models.Size
}

type Stroke struct {
	Width float64
	Color color.NRGBA
}

type TableShape struct {
	ID       int
	Polygon  []models.Point
	Center   models.Point
	Selected bool
	Fill     color.NRGBA
	Edge     Stroke
	Labels   []Text
}

// Frame полностью разложенный кадр в пикселях поверхности.
// Растеризатор и SVG рисуют его в одном порядке и ничего не вычисляют сами.
type Frame struct {
	Mode       Mode
	Size       models.Size
	Background color.NRGBA
	Origin     models.Point
	Room       models.Size
	RoomFill   color.NRGBA

	Grid       []Line
	GridStroke Stroke

	Rulers      []Line
	RulerStroke Stroke
	RulerLabels []Text

	Border Stroke

	Dimensions []Text
	Tables     []TableShape
	Title      *Text
}

// Measurer ширина строки в пикселях для заданного кегля.
type Measurer interface {
	Measure(text string, size float64, bold bool) float64
}

// CanvasSize размер поверхности в пикселях для режима mode.
func CanvasSize(snap models.Snapshot, mode Mode) models.Size {
	scale := snap.View.Scale
	size := models.Size{Width: snap.Room.Length * scale, Height: snap.Room.Width * scale}
	if mode == Export {
		size.Width += 2 * ExportPadding
		size.Height += 2 * ExportPadding
	}
	return size
}

// CheckCanvas отказывает кадрам, которые нельзя выделить в памяти.
func CheckCanvas(snap models.Snapshot, mode Mode) error {
	size := CanvasSize(snap, mode)
	area := math.Ceil(size.Width) * math.Ceil(size.Height)
	if math.IsNaN(area) || area > MaxCanvasPixels {
		return fmt.Errorf("%w: %.0fx%.0f px", ErrCanvasTooLarge, size.Width, size.Height)
	}
	return nil
}

// Layout раскладывает снимок в кадр. Одинаковый снимок всегда дает одинаковый кадр.
func Layout(snap models.Snapshot, mode Mode, m Measurer) Frame {
	view := snap.View
	scale := view.Scale
	room := models.Size{Width: snap.Room.Length * scale, Height: snap.Room.Width * scale}

	f := Frame{
		Mode:       mode,
		Size:       room,
		Background: colorRoom,
		Room:       room,
		RoomFill:   colorRoom,
		Border:     Stroke{Width: liveBorderWidth(view.ZoomLevel), Color: colorBorder},
	}

	if mode == Export {
		f.Origin = models.Point{X: ExportPadding, Y: ExportPadding}
		f.Size = models.Size{Width: room.Width + 2*ExportPadding, Height: room.Height + 2*ExportPadding}
		f.Background = colorWhite
		f.Border.Width = exportBorderWidth
	}

	if view.ShowGrid {
		f.Grid, f.GridStroke = gridLines(f, view, mode)
	}
	if view.ShowRulers && mode == Live {
		f.Rulers, f.RulerLabels = rulers(snap.Room, scale, view.Unit)
		f.RulerStroke = Stroke{Width: 1, Color: colorRulerTick}
	}
	if view.ShowDimensions {
		if mode == Export {
			f.Dimensions = exportDimensions(f, snap.Room, scale, view.Unit)
		} else {
			f.Dimensions = liveDimensions(f, snap.Room, view, m)
		}
	}

	for _, t := range snap.Tables {
		selected := snap.SelectedID != nil && *snap.SelectedID == t.ID && mode == Live
		f.Tables = append(f.Tables, tableShape(f.Origin, t, view, mode, selected))
	}

	if mode == Export {
		f.Title = &Text{
			Value: ExportTitle,
			At:    models.Point{X: f.Size.Width / 2, Y: titleBaseline},
			Size:  titleFontSize,
			Bold:  true,
			Color: colorText,
		}
	}
	return f
}

// ============================================================
// Grid, rulers, border
// ============================================================

// GridMultiplier прореживание сетки на крупном zoom.
func GridMultiplier(zoom float64) float64 {
	switch {
	case zoom > 2.0:
		return 5
	case zoom > 1.5:
		return 2
	}
	return 1
}

func liveBorderWidth(zoom float64) float64 {
	return geometry.Clamp(3/zoom, 2, 4)
}

func gridLines(f Frame, view models.View, mode Mode) ([]Line, Stroke) {
	spacing := view.GridSize * view.Scale
	stroke := Stroke{Width: 1, Color: colorGrid}

	if mode == Live {
		spacing *= GridMultiplier(view.ZoomLevel)
		stroke.Width = geometry.Clamp(1/view.ZoomLevel, 0.5, 1)
		opacity := geometry.Clamp(1/(view.ZoomLevel*0.5), 0.3, 1)
		stroke.Color.A = uint8(math.Round(opacity * 255))
	}
	if spacing <= 0 {
		return nil, stroke
	}

	var lines []Line
	o := f.Origin
	for i := 0; float64(i)*spacing <= f.Room.Width; i++ {
		x := o.X + float64(i)*spacing
		lines = append(lines, Line{From: models.Point{X: x, Y: o.Y}, To: models.Point{X: x, Y: o.Y + f.Room.Height}})
	}
	for i := 0; float64(i)*spacing <= f.Room.Height; i++ {
		y := o.Y + float64(i)*spacing
		lines = append(lines, Line{From: models.Point{X: o.X, Y: y}, To: models.Point{X: o.X + f.Room.Width, Y: y}})
	}
	return lines, stroke
}

// rulers засечки каждые 5 единиц, только строго внутри комнаты.
func rulers(room models.Room, scale float64, unit string) ([]Line, []Text) {
	var (
		ticks  []Line
		labels []Text
	)

	for n := rulerEvery; n < room.Length; n += rulerEvery {
		x := n * scale
		ticks = append(ticks, Line{From: models.Point{X: x}, To: models.Point{X: x, Y: rulerTick}})
		labels = append(labels, Text{
			Value: scene.FormatLength(n) + unit,
			At:    models.Point{X: x, Y: rulerLabelGap},
			Size:  rulerFontSize,
			Color: colorRulerText,
		})
	}
	for n := rulerEvery; n < room.Width; n += rulerEvery {
		y := n * scale
		ticks = append(ticks, Line{From: models.Point{Y: y}, To: models.Point{X: rulerTick, Y: y}})
		labels = append(labels, Text{
			Value:  scene.FormatLength(n) + unit,
			At:     models.Point{X: rulerSideShift, Y: y},
			Size:   rulerFontSize,
			Rotate: -90,
			Align:  AlignRight,
			Color:  colorRulerText,
		})
	}
	return ticks, labels
}

// ============================================================
// Dimension labels
// ============================================================

func liveDimensions(f Frame, room models.Room, view models.View, m Measurer) []Text {
	size := geometry.Clamp(view.Scale*0.4, 12, 20)
	inset := geometry.Clamp(8/view.ZoomLevel, 6, 12)
	plate := geometry.Clamp(4/view.ZoomLevel, 3, 6)

	label := func(value string, at models.Point, rotate float64) Text {
		width := m.Measure(value, size, true)
		return Text{
			Value:  value,
			At:     at,
			Size:   size,
			Bold:   true,
			Rotate: rotate,
			Color:  colorText,
			Plate:  models.Size{Width: width + 2*plate, Height: size + 2*plate},
		}
	}

	return []Text{
		label(scene.FormatLength(room.Length)+view.Unit, models.Point{X: f.Room.Width / 2, Y: f.Room.Height - inset}, 0),
		label(scene.FormatLength(room.Width)+view.Unit, models.Point{X: inset, Y: f.Room.Height / 2}, -90),
	}
}

func exportDimensions(f Frame, room models.Room, scale float64, unit string) []Text {
	size := geometry.Clamp(scale*0.5, 14, 20)
	o := f.Origin
	return []Text{
		{
			Value: scene.FormatLength(room.Length) + unit,
			At:    models.Point{X: o.X + f.Room.Width/2, Y: o.Y + f.Room.Height + exportDimOffset},
			Size:  size,
			Bold:  true,
			Color: colorText,
		},
		{
			Value:  scene.FormatLength(room.Width) + unit,
			At:     models.Point{X: o.X - exportDimOffset, Y: o.Y + f.Room.Height/2},
			Size:   size,
			Bold:   true,
			Rotate: -90,
			Color:  colorText,
		},
	}
}

// ============================================================
// Tables
// ============================================================

// TableFontSize кегль имени стола на живом холсте.
func TableFontSize(widthPx, scale float64) float64 {
	lo := math.Max(8, scale*0.3)
	hi := math.Min(16, scale*0.6)
	return math.Max(lo, math.Min(hi, widthPx*0.15))
}

func tableShape(origin models.Point, t models.Table, view models.View, mode Mode, selected bool) TableShape {
	scale := view.Scale
	center := models.Point{X: origin.X + t.X*scale, Y: origin.Y + t.Y*scale}
	fp := t.Footprint()

	shape := TableShape{
		ID:       t.ID,
		Polygon:  geometry.RectanglePoints(center.X, center.Y, fp.Width*scale, fp.Height*scale, float64(t.Rotation)),
		Center:   center,
		Selected: selected,
		Fill:     colorTableFill,
		Edge:     Stroke{Width: tableStrokeWidth, Color: colorTableEdge},
	}
	if selected {
		shape.Edge.Color = colorBorder
	}

	size := scene.FormatLength(t.Size) + view.Unit
	dims := fmt.Sprintf("%.1f×%.1f%s", t.Width, t.Height, view.Unit)

	if mode == Export {
		nameY := center.Y
		second := size
		if view.ShowDimensions {
			nameY -= exportNameShift
			second = size + " (" + dims + ")"
		}
		shape.Labels = []Text{
			{Value: t.Name, At: models.Point{X: center.X, Y: nameY}, Size: math.Max(12, scale*0.5), Bold: true, Color: colorTableLabel},
			{Value: second, At: models.Point{X: center.X, Y: center.Y + exportNameShift}, Size: math.Max(10, scale*0.4), Color: colorTableLabel},
		}
		return shape
	}

	nameSize := TableFontSize(t.Width*scale, scale)
	small := nameSize * 0.7
	lines := []Text{
		{Value: t.Name, Size: nameSize, Bold: true, Color: colorTableLabel},
		{Value: size, Size: small, Color: colorTableLabel},
	}
	if view.ShowDimensions {
		lines = append(lines, Text{Value: dims, Size: small * 0.85, Color: colorTableLabel})
	}
	shape.Labels = stackLines(center, lines)
	return shape
}

// stackLines центрирует строки по вертикали вокруг center с межстрочным 1.2.
func stackLines(center models.Point, lines []Text) []Text {
	total := 0.0
	for _, l := range lines {
		total += l.Size * 1.2
	}
	y := center.Y - total/2
	for i := range lines {
		h := lines[i].Size * 1.2
		lines[i].At = models.Point{X: center.X, Y: y + h/2}
		y += h
	}
	return lines
}
