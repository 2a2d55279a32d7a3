package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	"go.uber.org/zap"

	"floorplanner/internal/planner/drag"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/scene"
	"floorplanner/internal/planner/viewport"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidRoom    = errors.New("room dimensions must be positive numbers up to 1000")
	ErrInvalidSize    = errors.New("unsupported table size")
	ErrUnknownToggle  = errors.New("unknown toggle")
	ErrMissingID      = errors.New("table id required")
)

// MaxRoomLength верхняя граница стороны комнаты в единицах.
const MaxRoomLength = 1000.0

const NoticeNothingToClear = "No tables to clear!"

// Recorder получает каждую принятую команду до ее применения (журнал для replay).
// Ошибка записи отменяет команду.
type Recorder interface {
	Record(ctx context.Context, cmd Command) error
}

// Listener уведомление "состояние изменилось" со свежим снимком.
type Listener func(models.Snapshot)

// Result итог одной команды.
type Result struct {
	Changed bool   `json:"changed"`
	Notice  string `json:"notice,omitempty"`
}

type Options struct {
	Room       models.Room
	BaseScale  float64
	Unit       string
	TableSizes []float64
	Container  models.Size
	Now        func() time.Time
	Logger     *zap.Logger
}

// ============================================================
// Editor
// ============================================================

// Editor владеет сценой, видом и контроллером перетаскивания.
// Не потокобезопасен: вызывающий сериализует события.
type Editor struct {
	scene     *scene.Scene
	view      *viewport.Viewport
	drag      *drag.Controller
	sizes     []float64
	now       func() time.Time
	logger    *zap.Logger
	recorder  Recorder
	listeners []Listener
}

func New(opts Options) *Editor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Unit == "" {
		opts.Unit = "ft"
	}

	e := &Editor{
		scene:  scene.New(opts.Room),
		view:   viewport.New(opts.BaseScale, opts.Unit),
		drag:   drag.New(),
		sizes:  opts.TableSizes,
		now:    opts.Now,
		logger: opts.Logger,
	}

	// Стартовая подгонка: только если комната не помещается при 100%.
	if opts.Container.Width > 0 && opts.Container.Height > 0 {
		e.view.SetContainer(opts.Container)
		e.autoFit()
	}
	return e
}

func (e *Editor) SetRecorder(r Recorder) {
	e.recorder = r
}

func (e *Editor) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

func (e *Editor) View() *viewport.Viewport {
	return e.view
}

func (e *Editor) Drag() *drag.Controller {
	return e.drag
}

// Snapshot глубокая копия состояния; последующие команды ее не меняют.
func (e *Editor) Snapshot() models.Snapshot {
	room := e.scene.Room()
	snap := models.Snapshot{
		Room:     room,
		View:     e.view.Snapshot(room),
		Tables:   e.scene.Tables(),
		Summary:  e.scene.Summary(e.view.Unit()),
		Dragging: e.drag.Dragging(),
		Panning:  e.drag.Panning(),
		PanHint:  string(e.view.Hint.Phase(e.now())),
	}
	if id, ok := e.scene.SelectedID(); ok {
		selected := id
		snap.SelectedID = &selected
	}
	return snap
}

// Dispatch единственная точка изменения состояния.
// Порядок: проверка, запись в журнал, применение. Состояние и журнал не расходятся.
func (e *Editor) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	if err := e.validate(cmd); err != nil {
		e.logger.Debug("command rejected", zap.String("type", cmd.Kind()), zap.Error(err))
		return Result{}, err
	}

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, cmd); err != nil {
			e.logger.Error("command not recorded", zap.String("type", cmd.Kind()), zap.Error(err))
			return Result{}, fmt.Errorf("record %s: %w", cmd.Kind(), err)
		}
	}

	res := e.apply(cmd)
	e.logger.Debug("command applied",
		zap.String("type", cmd.Kind()),
		zap.Bool("changed", res.Changed),
	)
	if res.Notice != "" {
		e.logger.Info("command notice", zap.String("type", cmd.Kind()), zap.String("notice", res.Notice))
	}

	if res.Changed {
		snap := e.Snapshot()
		for _, l := range e.listeners {
			l(snap)
		}
	}
	return res, nil
}

// validate все отказы до изменения состояния.
func (e *Editor) validate(cmd Command) error {
	factory, ok := registry[cmd.Kind()]
	if !ok || reflect.TypeOf(factory()).Elem() != reflect.TypeOf(cmd) {
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	switch c := cmd.(type) {
	case SetRoom:
		if !validRoomLength(c.Length) || !validRoomLength(c.Width) {
			return ErrInvalidRoom
		}
	case AddTable:
		if !validLength(c.Size) || !e.sizeAllowed(c.Size) {
			return fmt.Errorf("%w: %v", ErrInvalidSize, c.Size)
		}
	case SetToggle:
		if e.toggle(c.Name) == nil {
			return fmt.Errorf("%w: %q", ErrUnknownToggle, c.Name)
		}
	}
	return nil
}

func (e *Editor) apply(cmd Command) Result {
	switch c := cmd.(type) {
	case SetRoom:
		return e.setRoom(c)
	case AddTable:
		return e.addTable(c)
	case RemoveTable:
		return e.removeTable(c.ID)
	case RenameTable:
		return changed(e.scene.RenameTable(c.ID, c.Name))
	case RotateTable:
		return changed(e.scene.RotateTable(c.ID))
	case MoveTable:
		return changed(e.scene.MoveTable(c.ID, c.X, c.Y, e.view.SnapSize()))
	case SelectTable:
		return changed(e.scene.Select(c.ID))
	case ClearSelection:
		return e.clearSelection()
	case ClearAll:
		return e.clearAll()
	case SetToggle:
		return e.setToggle(c)
	case ZoomIn:
		return e.zoomed(e.view.ZoomIn())
	case ZoomOut:
		return e.zoomed(e.view.ZoomOut())
	case ResetZoom:
		return e.zoomed(e.view.ResetZoom())
	case SetZoom:
		return e.zoomed(e.view.SetZoom(c.Level))
	case SetZoomPercent:
		return e.zoomed(e.view.SetZoomPercent(c.Percent))
	case FitToScreen:
		return e.zoomed(e.view.Fit(e.scene.Room(), e.view.Available()))
	case Wheel:
		if !c.Ctrl {
			return Result{}
		}
		return e.zoomed(e.view.Wheel(c.DeltaY))
	case Resize:
		e.view.SetContainer(models.Size{Width: c.Width, Height: c.Height})
		e.rescroll()
		return Result{Changed: true}
	case PointerDown:
		return e.pointerDown(c)
	case PointerMove:
		return e.pointerMove(c)
	case PointerUp:
		panned := e.drag.EndPan()
		dragged := e.drag.End()
		return changed(panned || dragged)
	case PointerLeave:
		return changed(e.drag.EndPan())
	case Click:
		return e.click(c)
	case KeyDown:
		return e.keyDown(c)
	case KeyUp:
		return e.keyUp(c)
	}
	return Result{}
}

// ============================================================
// Scene commands
// ============================================================

func (e *Editor) setRoom(c SetRoom) Result {
	e.scene.SetRoom(models.Room{Length: c.Length, Width: c.Width})
	e.autoFit()
	return Result{Changed: true}
}

func (e *Editor) addTable(c AddTable) Result {
	e.scene.AddTable(c.Size)
	return Result{Changed: true}
}

func (e *Editor) removeTable(id int) Result {
	if !e.scene.RemoveTable(id) {
		return Result{}
	}
	e.drag.Cancel(id)
	return Result{Changed: true}
}

func (e *Editor) clearSelection() Result {
	_, had := e.scene.SelectedID()
	e.scene.ClearSelection()
	return changed(had)
}

func (e *Editor) clearAll() Result {
	if !e.scene.ClearAll() {
		return Result{Notice: NoticeNothingToClear}
	}
	e.drag.End()
	return Result{Changed: true}
}

func (e *Editor) sizeAllowed(size float64) bool {
	if len(e.sizes) == 0 {
		return true
	}
	for _, s := range e.sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ============================================================
// View commands
// ============================================================

func (e *Editor) toggle(name string) *bool {
	switch name {
	case "grid":
		return &e.view.ShowGrid
	case "dimensions":
		return &e.view.ShowDimensions
	case "rulers":
		return &e.view.ShowRulers
	case "snap":
		return &e.view.SnapToGrid
	}
	return nil
}

func (e *Editor) setToggle(c SetToggle) Result {
	target := e.toggle(c.Name)
	next := !*target
	if c.On != nil {
		next = *c.On
	}
	if next == *target {
		return Result{}
	}
	*target = next
	return Result{Changed: true}
}

// zoomed общий хвост всех изменений zoom: прокрутка и одноразовая подсказка.
func (e *Editor) zoomed(aboveOne bool) Result {
	if aboveOne {
		e.view.Hint.Trigger(e.now())
	}
	e.rescroll()
	return Result{Changed: true}
}

func (e *Editor) autoFit() {
	room := e.scene.Room()
	available := e.view.Available()
	if available.Width > 0 && available.Height > 0 && e.view.NeedsFit(room, available) {
		e.zoomed(e.view.Fit(room, available))
		return
	}
	e.rescroll()
}

func (e *Editor) rescroll() {
	e.view.SetScroll(e.view.Scroll(), e.scene.Room())
}

// ============================================================
// Pointer & keyboard
// ============================================================

func (e *Editor) pointerDown(c PointerDown) Result {
	client := models.Point{X: c.X, Y: c.Y}

	if e.drag.WantsPan(c.Button) {
		return changed(e.drag.BeginPan(client, e.view.Scroll()))
	}
	if c.Button != drag.ButtonPrimary || c.Affordance != AffordanceBody {
		return Result{}
	}

	table, ok := e.scene.HitTest(e.view.ClientToUnits(client))
	if !ok {
		return Result{}
	}
	if !e.drag.Begin(table.ID, client, models.Point{X: table.X, Y: table.Y}) {
		return Result{}
	}
	e.scene.Select(table.ID)
	return Result{Changed: true}
}

func (e *Editor) pointerMove(c PointerMove) Result {
	client := models.Point{X: c.X, Y: c.Y}

	if scroll, ok := e.drag.PanScroll(client); ok {
		e.view.SetScroll(scroll, e.scene.Room())
		return Result{Changed: true}
	}

	id, candidate, ok := e.drag.Candidate(client, e.view.Scale())
	if !ok {
		return Result{}
	}
	return changed(e.scene.MoveTable(id, candidate.X, candidate.Y, e.view.SnapSize()))
}

// click выделяет стол под курсором или снимает выделение. Подавляется drag'ом и pan'ом.
func (e *Editor) click(c Click) Result {
	if e.drag.Dragging() || e.drag.PanMode() {
		return Result{}
	}
	table, ok := e.scene.HitTest(e.view.ClientToUnits(models.Point{X: c.X, Y: c.Y}))
	if ok {
		return changed(e.scene.Select(table.ID))
	}
	return e.clearSelection()
}

func (e *Editor) keyDown(c KeyDown) Result {
	if c.Key == "Escape" {
		return e.clearSelection()
	}
	if c.InInput {
		return Result{}
	}

	switch {
	case c.Code == "Space":
		if e.drag.SpaceHeld() {
			return Result{}
		}
		e.drag.SetSpaceHeld(true)
		e.view.Hint.Pin(true)
		return Result{Changed: true}
	case c.Key == "r" || c.Key == "R":
		if selected, ok := e.scene.Selected(); ok {
			return changed(e.scene.RotateTable(selected.ID))
		}
	case c.Key == "Delete" || c.Key == "Backspace":
		if selected, ok := e.scene.Selected(); ok {
			return e.removeTable(selected.ID)
		}
	}
	return Result{}
}

func (e *Editor) keyUp(c KeyUp) Result {
	if c.Code != "Space" || !e.drag.SpaceHeld() {
		return Result{}
	}
	e.drag.SetSpaceHeld(false)
	e.view.Hint.Pin(false)
	return Result{Changed: true}
}

func changed(ok bool) Result {
	return Result{Changed: ok}
}

func validLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func validRoomLength(v float64) bool {
	return validLength(v) && v <= MaxRoomLength
}
