package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"floorplanner/internal/planner/models"
)

const (
	TablesSheet = "Tables"
	RoomSheet   = "Room"
)

// scheduleHeader колонки листа столов; {unit} подставляется из вида.
var scheduleHeader = []string{
	"ID",
	"Name",
	"Size (%s)",
	"Width (%s)",
	"Height (%s)",
	"X (%s)",
	"Y (%s)",
	"Rotation (deg)",
}

var scheduleWidths = []float64{6, 24, 12, 12, 12, 10, 10, 15}

// Schedule пишет XLSX-спецификацию столов снимка: лист Tables по столу в строке и лист Room.
func Schedule(w io.Writer, snap models.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(TablesSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	unit := snap.View.Unit
	for col, header := range scheduleHeader {
		title := header
		if col >= 2 && col <= 6 {
			title = fmt.Sprintf(header, unit)
		}
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(TablesSheet, cell, title); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(TablesSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(TablesSheet, name, name, scheduleWidths[col]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, t := range snap.Tables {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		row := []any{t.ID, t.Name, t.Size, t.Width, t.Height, t.X, t.Y, int(t.Rotation)}
		if err := f.SetSheetRow(TablesSheet, cell, &row); err != nil {
			return fmt.Errorf("write table %d: %w", t.ID, err)
		}
	}

	if err := f.SetPanes(TablesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze panes: %w", err)
	}

	if err := writeRoomSheet(f, snap); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRoomSheet(f *excelize.File, snap models.Snapshot) error {
	if _, err := f.NewSheet(RoomSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	unit := snap.View.Unit
	rows := [][]any{
		{"Length (" + unit + ")", snap.Room.Length},
		{"Width (" + unit + ")", snap.Room.Width},
		{"Tables", len(snap.Tables)},
		{"Summary", snap.Summary},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("room cell: %w", err)
		}
		if err := f.SetSheetRow(RoomSheet, cell, &row); err != nil {
			return fmt.Errorf("write room row: %w", err)
		}
	}
	if err := f.SetColWidth(RoomSheet, "A", "A", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return f.SetColWidth(RoomSheet, "B", "B", 48)
}
