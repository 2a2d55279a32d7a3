package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplanner/internal/planner/drag"
	"floorplanner/internal/planner/geometry"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/viewport"
)

var clock = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	return New(Options{
		Room:       models.Room{Length: 20, Width: 15},
		BaseScale:  25,
		TableSizes: []float64{4, 6, 8, 10},
		Container:  models.Size{Width: 1200, Height: 800},
		Now:        func() time.Time { return clock },
	})
}

func mustDispatch(t *testing.T, e *Editor, cmds ...Command) Result {
	t.Helper()
	var res Result
	for _, cmd := range cmds {
		var err error
		res, err = e.Dispatch(context.Background(), cmd)
		require.NoError(t, err, "dispatch %s", cmd.Kind())
	}
	return res
}

func onlyTable(t *testing.T, e *Editor) models.Table {
	t.Helper()
	tables := e.Scene().Tables()
	require.Len(t, tables, 1)
	return tables[0]
}

func TestScenario_AddRotateMoveRename(t *testing.T) {
	e := newEditor(t)

	mustDispatch(t, e, AddTable{Size: 6})
	table := onlyTable(t, e)
	assert.Equal(t, models.Point{X: 10, Y: 7.5}, models.Point{X: table.X, Y: table.Y})
	assert.Equal(t, 6.0, table.Width)
	assert.InDelta(t, 3.6, table.Height, 1e-9)

	mustDispatch(t, e, RotateTable{ID: table.ID})
	table = onlyTable(t, e)
	assert.Equal(t, models.Rotation90, table.Rotation)
	assert.InDelta(t, 3.6, table.Width, 1e-9)
	assert.Equal(t, 6.0, table.Height)

	mustDispatch(t, e, MoveTable{ID: table.ID, X: 0, Y: 0})
	table = onlyTable(t, e)
	assert.InDelta(t, 1.8, table.X, 1e-9)
	assert.InDelta(t, 3.0, table.Y, 1e-9)

	mustDispatch(t, e, RenameTable{ID: table.ID, Name: ""})
	assert.Equal(t, "Table 1", onlyTable(t, e).Name)
}

func TestScenario_ZoomSlider(t *testing.T) {
	e := newEditor(t)

	mustDispatch(t, e, SetZoomPercent{Percent: 250})

	assert.Equal(t, 2.5, e.View().Zoom())
	assert.Equal(t, 25*2.5, e.View().Scale())
	assert.Equal(t, string(viewport.HintShown), e.Snapshot().PanHint)
}

func TestInitialAutoFit(t *testing.T) {
	e := New(Options{
		Room:      models.Room{Length: 80, Width: 15},
		BaseScale: 25,
		Container: models.Size{Width: 1040, Height: 800},
	})
	assert.Equal(t, 0.5, e.View().Zoom())

	e = newEditor(t)
	assert.Equal(t, 1.0, e.View().Zoom(), "fits without shrinking")
}

func TestSetRoom(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 10})

	_, err := e.Dispatch(context.Background(), SetRoom{Length: -1, Width: 10})
	require.ErrorIs(t, err, ErrInvalidRoom)

	_, err = e.Dispatch(context.Background(), SetRoom{Length: 1e7, Width: 1e7})
	require.ErrorIs(t, err, ErrInvalidRoom)
	assert.Equal(t, models.Room{Length: 20, Width: 15}, e.Scene().Room())

	mustDispatch(t, e, SetRoom{Length: MaxRoomLength, Width: 10})

	mustDispatch(t, e, SetRoom{Length: 12, Width: 8})
	table := onlyTable(t, e)
	assert.True(t, geometry.InsideRoom(table, e.Scene().Room()))
}

func TestAddTable_RejectsUnknownSize(t *testing.T) {
	e := newEditor(t)

	_, err := e.Dispatch(context.Background(), AddTable{Size: 7})
	require.ErrorIs(t, err, ErrInvalidSize)
	assert.Equal(t, 0, e.Scene().Len())
}

func TestClearAll_EmptyIsNotice(t *testing.T) {
	e := newEditor(t)

	res := mustDispatch(t, e, ClearAll{})
	assert.False(t, res.Changed)
	assert.Equal(t, NoticeNothingToClear, res.Notice)

	res = mustDispatch(t, e, AddTable{Size: 4}, ClearAll{})
	assert.True(t, res.Changed)
	assert.Equal(t, 0, e.Scene().Len())
}

func TestDragWithPointer(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 4}, ClearSelection{})

	// центр стола (10, 7.5) ft = (250, 187.5) px при scale 25
	mustDispatch(t, e, PointerDown{X: 250, Y: 187.5, Button: drag.ButtonPrimary})
	assert.True(t, e.Drag().Dragging())
	_, selected := e.Scene().Selected()
	assert.True(t, selected, "drag start selects")

	mustDispatch(t, e, PointerMove{X: 300, Y: 137.5})
	table := onlyTable(t, e)
	assert.Equal(t, 12.0, table.X)
	assert.Equal(t, 5.5, table.Y)

	mustDispatch(t, e, PointerMove{X: -1000, Y: -1000})
	table = onlyTable(t, e)
	assert.Equal(t, 2.0, table.X)
	assert.InDelta(t, 1.2, table.Y, 1e-9)

	mustDispatch(t, e, PointerUp{})
	assert.False(t, e.Drag().Dragging())

	res := mustDispatch(t, e, PointerMove{X: 250, Y: 187.5})
	assert.False(t, res.Changed, "idle moves do nothing")
}

func TestDragSnapsToGrid(t *testing.T) {
	e := newEditor(t)
	on := true
	mustDispatch(t, e, AddTable{Size: 4}, SetToggle{Name: "snap", On: &on})

	mustDispatch(t, e,
		PointerDown{X: 250, Y: 187.5},
		PointerMove{X: 262, Y: 190},
	)

	table := onlyTable(t, e)
	assert.Equal(t, 10.0, table.X)
	assert.Equal(t, 8.0, table.Y)
}

func TestPointerDownOnAffordanceDoesNotDrag(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 4})

	mustDispatch(t, e, PointerDown{X: 250, Y: 187.5, Affordance: AffordanceRotate})

	assert.False(t, e.Drag().Dragging())
}

func TestSpaceHeldPreemptsDragAndPans(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, SetZoom{Level: 2}, AddTable{Size: 4})
	mustDispatch(t, e, Resize{Width: 400, Height: 300})

	mustDispatch(t, e, KeyDown{Key: " ", Code: "Space"})
	mustDispatch(t, e, PointerDown{X: 250, Y: 187.5, Button: drag.ButtonPrimary})
	assert.False(t, e.Drag().Dragging())
	assert.True(t, e.Drag().Panning())

	mustDispatch(t, e, PointerMove{X: 150, Y: 137.5})
	assert.Equal(t, models.Point{X: 100, Y: 50}, e.View().Scroll())

	mustDispatch(t, e, PointerUp{}, KeyUp{Key: " ", Code: "Space"})
	assert.False(t, e.Drag().PanMode())

	mustDispatch(t, e, PointerDown{X: 10, Y: 10, Button: drag.ButtonSecondary})
	assert.True(t, e.Drag().Panning())
	mustDispatch(t, e, PointerLeave{})
	assert.False(t, e.Drag().Panning())
}

func TestClickSelectsAndDeselects(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 4}, ClearSelection{})

	mustDispatch(t, e, Click{X: 250, Y: 187.5})
	id, ok := e.Scene().SelectedID()
	require.True(t, ok)
	assert.Equal(t, 0, id)

	mustDispatch(t, e, Click{X: 5, Y: 5})
	_, ok = e.Scene().SelectedID()
	assert.False(t, ok)

	mustDispatch(t, e, PointerDown{X: 250, Y: 187.5})
	res := mustDispatch(t, e, Click{X: 5, Y: 5})
	assert.False(t, res.Changed, "click suppressed while dragging")
}

func TestKeyboardShortcuts(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 6})

	mustDispatch(t, e, KeyDown{Key: "R"})
	assert.Equal(t, models.Rotation90, onlyTable(t, e).Rotation)

	mustDispatch(t, e, KeyDown{Key: "r", InInput: true})
	assert.Equal(t, models.Rotation90, onlyTable(t, e).Rotation, "typing in an input is ignored")

	mustDispatch(t, e, KeyDown{Key: "Escape", InInput: true})
	_, ok := e.Scene().SelectedID()
	assert.False(t, ok)

	res := mustDispatch(t, e, KeyDown{Key: "Delete"})
	assert.False(t, res.Changed, "nothing selected")

	mustDispatch(t, e, SelectTable{ID: 0}, KeyDown{Key: "Backspace"})
	assert.Equal(t, 0, e.Scene().Len())
}

func TestWheelRequiresCtrl(t *testing.T) {
	e := newEditor(t)

	res := mustDispatch(t, e, Wheel{DeltaY: -1})
	assert.False(t, res.Changed)

	mustDispatch(t, e, Wheel{DeltaY: 1, Ctrl: true})
	assert.InDelta(t, 0.9, e.View().Zoom(), 1e-9)
}

func TestToggles(t *testing.T) {
	e := newEditor(t)

	mustDispatch(t, e, SetToggle{Name: "grid"})
	assert.False(t, e.View().ShowGrid)

	off := false
	res := mustDispatch(t, e, SetToggle{Name: "grid", On: &off})
	assert.False(t, res.Changed)

	_, err := e.Dispatch(context.Background(), SetToggle{Name: "labels"})
	require.ErrorIs(t, err, ErrUnknownToggle)
}

func TestRemoveDuringDragCancelsDrag(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 4}, PointerDown{X: 250, Y: 187.5})

	mustDispatch(t, e, RemoveTable{ID: 0})

	assert.False(t, e.Drag().Dragging())
	_, ok := e.Scene().SelectedID()
	assert.False(t, ok)
}

func TestListenersAndSnapshotIsolation(t *testing.T) {
	e := newEditor(t)
	var snaps []models.Snapshot
	e.Subscribe(func(s models.Snapshot) { snaps = append(snaps, s) })

	mustDispatch(t, e, AddTable{Size: 6}, RemoveTable{ID: 99})
	require.Len(t, snaps, 1, "no-op commands do not notify")

	first := snaps[0]
	mustDispatch(t, e, MoveTable{ID: 0, X: 3, Y: 3}, RenameTable{ID: 0, Name: "Bar"})

	assert.Equal(t, 10.0, first.Tables[0].X)
	assert.Equal(t, "Table 1", first.Tables[0].Name)
	require.NotNil(t, first.SelectedID)
	assert.Equal(t, "1 table placed (1×6ft)", first.Summary)
}

type memoryRecorder struct {
	cmds []Command
}

func (m *memoryRecorder) Record(_ context.Context, cmd Command) error {
	m.cmds = append(m.cmds, cmd)
	return nil
}

type failingRecorder struct {
	calls int
}

func (f *failingRecorder) Record(context.Context, Command) error {
	f.calls++
	return errors.New("disk I/O error")
}

func TestDispatch_RecordFailureLeavesStateUntouched(t *testing.T) {
	e := newEditor(t)
	mustDispatch(t, e, AddTable{Size: 6})
	before := e.Snapshot()

	rec := &failingRecorder{}
	e.SetRecorder(rec)
	notified := 0
	e.Subscribe(func(models.Snapshot) { notified++ })

	for _, cmd := range []Command{AddTable{Size: 8}, RotateTable{ID: 0}, SetZoomPercent{Percent: 200}, ClearAll{}} {
		_, err := e.Dispatch(context.Background(), cmd)
		require.Error(t, err, cmd.Kind())
	}

	assert.Equal(t, 4, rec.calls)
	assert.Zero(t, notified)
	assert.Equal(t, before, e.Snapshot())
}

func TestDispatch_RejectedCommandIsNotRecorded(t *testing.T) {
	e := newEditor(t)
	rec := &memoryRecorder{}
	e.SetRecorder(rec)

	_, err := e.Dispatch(context.Background(), AddTable{Size: 7})
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = e.Dispatch(context.Background(), SetToggle{Name: "labels"})
	require.ErrorIs(t, err, ErrUnknownToggle)
	_, err = e.Dispatch(context.Background(), SetRoom{Length: 0, Width: 5})
	require.ErrorIs(t, err, ErrInvalidRoom)

	assert.Empty(t, rec.cmds)
	assert.Equal(t, 0, e.Scene().Len())
}

func TestReplayIsDeterministic(t *testing.T) {
	e := newEditor(t)
	rec := &memoryRecorder{}
	e.SetRecorder(rec)

	mustDispatch(t, e,
		AddTable{Size: 6},
		AddTable{Size: 8},
		RotateTable{ID: 1},
		PointerDown{X: 250, Y: 187.5},
		PointerMove{X: 400, Y: 300},
		PointerUp{},
		RenameTable{ID: 0, Name: "Window"},
		SetZoomPercent{Percent: 150},
	)

	replayed := newEditor(t)
	for _, cmd := range rec.cmds {
		data, err := Encode(cmd)
		require.NoError(t, err)
		decoded, err := Decode(data)
		require.NoError(t, err)
		mustDispatch(t, replayed, decoded)
	}

	assert.Equal(t, e.Snapshot(), replayed.Snapshot())
}

func TestDecode(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"move_table","id":2,"x":3.5,"y":4}`))
	require.NoError(t, err)
	assert.Equal(t, MoveTable{ID: 2, X: 3.5, Y: 4}, cmd)

	_, err = Decode([]byte(`{"type":"undo"}`))
	require.ErrorIs(t, err, ErrUnknownCommand)

	_, err = Decode([]byte(`not json`))
	require.Error(t, err)
}

func TestDecode_RequiresTableID(t *testing.T) {
	for _, kind := range []string{"remove_table", "rename_table", "rotate_table", "move_table", "select_table"} {
		_, err := Decode([]byte(`{"type":"` + kind + `"}`))
		require.ErrorIs(t, err, ErrMissingID, kind)
	}

	cmd, err := Decode([]byte(`{"type":"remove_table","id":0}`))
	require.NoError(t, err)
	assert.Equal(t, RemoveTable{ID: 0}, cmd)
}
