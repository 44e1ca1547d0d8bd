package export

import (
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mpfops/roster/internal/model"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.March, "mission_summary_2024_03.xlsx"},
		{2025, time.December, "mission_summary_2025_12.xlsx"},
	}
	for _, tt := range tests {
		if got := Filename(tt.year, tt.month); got != tt.want {
			t.Errorf("Filename(%d, %v) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestSheetName(t *testing.T) {
	if got := SheetName(2024, time.March); got != "2024-03" {
		t.Errorf("SheetName = %q, want 2024-03", got)
	}
}

func TestBuildMonthWorkbook(t *testing.T) {
	d := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assignments := []model.AssignmentRow{
		{Username: "alice", MissionName: "Mission A", Date: d},
		{Username: "bob", MissionName: "Mission B", Date: d.AddDate(0, 0, 1)},
	}
	onCalls := []model.AssignmentRow{
		{Username: "carol", MissionName: "Mission A", Date: d},
	}

	f, err := BuildMonthWorkbook(2024, time.March, assignments, onCalls)
	if err != nil {
		t.Fatalf("BuildMonthWorkbook: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	rf, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer rf.Close()

	sheet := SheetName(2024, time.March)
	if got := rf.GetSheetList(); len(got) != 1 || got[0] != sheet {
		t.Fatalf("sheets = %v, want [%s]", got, sheet)
	}

	rows, err := rf.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{
		{"User", "Mission", "Date", "Type"},
		{"alice", "Mission A", "2024-03-15", "Assigned"},
		{"bob", "Mission B", "2024-03-16", "Assigned"},
		{"carol", "Mission A", "2024-03-15", "On-Call"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}

	// Column widths never drop below the floor.
	w, err := rf.GetColWidth(sheet, "A")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if w < float64(minColWidth) {
		t.Errorf("column A width = %v, want >= %d", w, minColWidth)
	}
}

func TestBuildMonthWorkbookEmpty(t *testing.T) {
	f, err := BuildMonthWorkbook(2024, time.February, nil, nil)
	if err != nil {
		t.Fatalf("BuildMonthWorkbook: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	rf, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer rf.Close()

	rows, err := rf.GetRows("2024-02")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want header only", rows)
	}
}
