package editor

import "floorplanner/internal/planner/drag"

// ============================================================
// Commands
// ============================================================

// Command одно действие пользователя. Все изменения состояния идут через Editor.Dispatch.
type Command interface {
	Kind() string
}

// Scene

type SetRoom struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

type AddTable struct {
	Size float64 `json:"size"`
}

type RemoveTable struct {
	ID int `json:"id"`
}

type RenameTable struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RotateTable struct {
	ID int `json:"id"`
}

type MoveTable struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type SelectTable struct {
	ID int `json:"id"`
}

type ClearSelection struct{}

// ClearAll UI подтверждает очистку до отправки команды.
type ClearAll struct{}

// View

// SetToggle name: grid, dimensions, rulers, snap. On == nil переключает.
type SetToggle struct {
	Name string `json:"name"`
	On   *bool  `json:"on,omitempty"`
}

type ZoomIn struct{}

type ZoomOut struct{}

type ResetZoom struct{}

type SetZoom struct {
	Level float64 `json:"level"`
}

// SetZoomPercent значение ползунка, 100 = 1.0.
type SetZoomPercent struct {
	Percent float64 `json:"percent"`
}

type FitToScreen struct{}

// Wheel zoom срабатывает только с Ctrl/Cmd.
type Wheel struct {
	DeltaY float64 `json:"delta_y"`
	Ctrl   bool    `json:"ctrl"`
}

// Resize размер видимого контейнера в пикселях.
type Resize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pointer: координаты в пикселях относительно видимого контейнера.

type Affordance string

const (
	AffordanceBody   Affordance = ""
	AffordanceDelete Affordance = "delete"
	AffordanceRotate Affordance = "rotate"
)

type PointerDown struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Button     drag.Button `json:"button"`
	Affordance Affordance  `json:"affordance,omitempty"`
}

type PointerMove struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PointerUp struct{}

type PointerLeave struct{}

type Click struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Keyboard

type KeyDown struct {
	Key     string `json:"key"`
	Code    string `json:"code"`
	InInput bool   `json:"in_input"`
}

type KeyUp struct {
	Key  string `json:"key"`
	Code string `json:"code"`
}

func (SetRoom) Kind() string        { return "set_room" }
func (AddTable) Kind() string       { return "add_table" }
func (RemoveTable) Kind() string    { return "remove_table" }
func (RenameTable) Kind() string    { return "rename_table" }
func (RotateTable) Kind() string    { return "rotate_table" }
func (MoveTable) Kind() string      { return "move_table" }
func (SelectTable) Kind() string    { return "select_table" }
func (ClearSelection) Kind() string { return "clear_selection" }
func (ClearAll) Kind() string       { return "clear_all" }
func (SetToggle) Kind() string      { return "set_toggle" }
func (ZoomIn) Kind() string         { return "zoom_in" }
func (ZoomOut) Kind() string        { return "zoom_out" }
func (ResetZoom) Kind() string      { return "reset_zoom" }
func (SetZoom) Kind() string        { return "set_zoom" }
func (SetZoomPercent) Kind() string { return "set_zoom_percent" }
func (FitToScreen) Kind() string    { return "fit_to_screen" }
func (Wheel) Kind() string          { return "wheel" }
func (Resize) Kind() string         { return "resize" }
func (PointerDown) Kind() string    { return "pointer_down" }
func (PointerMove) Kind() string    { return "pointer_move" }
func (PointerUp) Kind() string      { return "pointer_up" }
func (PointerLeave) Kind() string   { return "pointer_leave" }
func (Click) Kind() string          { return "click" }
func (KeyDown) Kind() string        { return "key_down" }
func (KeyUp) Kind() string          { return "key_up" }

var registry = map[string]func() Command{
	"set_room":         func() Command { return &SetRoom{} },
	"add_table":        func() Command { return &AddTable{} },
	"remove_table":     func() Command { return &RemoveTable{} },
	"rename_table":     func() Command { return &RenameTable{} },
	"rotate_table":     func() Command { return &RotateTable{} },
	"move_table":       func() Command { return &MoveTable{} },
	"select_table":     func() Command { return &SelectTable{} },
	"clear_selection":  func() Command { return &ClearSelection{} },
	"clear_all":        func() Command { return &ClearAll{} },
	"set_toggle":       func() Command { return &SetToggle{} },
	"zoom_in":          func() Command { return &ZoomIn{} },
	"zoom_out":         func() Command { return &ZoomOut{} },
	"reset_zoom":       func() Command { return &ResetZoom{} },
	"set_zoom":         func() Command { return &SetZoom{} },
	"set_zoom_percent": func() Command { return &SetZoomPercent{} },
	"fit_to_screen":    func() Command { return &FitToScreen{} },
	"wheel":            func() Command { return &Wheel{} },
	"resize":           func() Command { return &Resize{} },
	"pointer_down":     func() Command { return &PointerDown{} },
	"pointer_move":     func() Command { return &PointerMove{} },
	"pointer_up":       func() Command { return &PointerUp{} },
	"pointer_leave":    func() Command { return &PointerLeave{} },
	"click":            func() Command { return &Click{} },
	"key_down":         func() Command { return &KeyDown{} },
	"key_up":           func() Command { return &KeyUp{} },
}
