package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"floorplanner/internal/planner/models"
)

func TestFilename(t *testing.T) {
	at := time.Date(2026, 10, 19, 23, 30, 0, 0, time.FixedZone("MSK", 3*3600))

	assert.Equal(t, "floor-plan-2026-10-19.png", Filename(ExtPNG, at))
	assert.Equal(t, `attachment; filename="floor-plan-2026-10-19.xlsx"`, Disposition(ExtXLSX, at))

	late := time.Date(2026, 10, 20, 1, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	assert.Equal(t, "floor-plan-2026-10-19.svg", Filename(ExtSVG, late), "date is taken in UTC")
}

func TestSchedule(t *testing.T) {
	snap := models.Snapshot{
		Room: models.Room{Length: 20, Width: 15},
		View: models.View{Unit: "ft"},
		Tables: []models.Table{
			{ID: 0, Name: "Window", Size: 6, Width: 6, Height: 3.6, X: 10, Y: 7.5},
			{ID: 2, Name: "Table 3", Size: 8, Width: 4.8, Height: 8, X: 4, Y: 5, Rotation: models.Rotation90},
		},
		Summary: "2 tables placed (1×6ft, 1×8ft)",
	}

	var buf bytes.Buffer
	require.NoError(t, Schedule(&buf, snap))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TablesSheet, RoomSheet}, f.GetSheetList())

	rows, err := f.GetRows(TablesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Size (ft)", rows[0][2])
	assert.Equal(t, "Window", rows[1][1])
	assert.Equal(t, "Table 3", rows[2][1])

	summary, err := f.GetCellValue(RoomSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, snap.Summary, summary)
}

func TestScheduleEmptyScene(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Schedule(&buf, models.Snapshot{View: models.View{Unit: "ft"}}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TablesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestStorageSave(t *testing.T) {
	root := filepath.Join(t.TempDir(), "exports")
	s := NewStorage(root)
	assert.Equal(t, root, s.Root())
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	path, err := s.Save(ExtSVG, at, []byte("<svg/>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "floor-plan-2026-10-19.svg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}
