package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// GridCell is one session rendered into the weekly grid.
type GridCell struct {
	Day       int
	StartTime string
	EndTime   string
	Title     string
	Subtitle  string
	ColorCode string
}

// TimetableGrid is the weekly layout input: cells keyed by day 0-6 with
// display times, plus the ordered list of day labels to print.
type TimetableGrid struct {
	Title     string
	DayLabels []string
	Cells     []GridCell
}

// SeatingChart is the per-room seating layout input.
type SeatingChart struct {
	Title    string
	RoomCode string
	Seats    []SeatLabel
}

// SeatLabel is one occupied cell of a seating grid.
type SeatLabel struct {
	Row   int
	Col   int
	Label string
}

// TimetablePDF renders the weekly class grid, one landscape page, days as
// columns and sessions stacked chronologically within each day.
func TimetablePDF(grid TimetableGrid) ([]byte, error) {
	if len(grid.DayLabels) == 0 {
		return nil, fmt.Errorf("timetable pdf requires day labels")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 12, 8)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, grid.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	colWidth := 281.0 / float64(len(grid.DayLabels))
	pdf.SetFont("Arial", "B", 10)
	for _, label := range grid.DayLabels {
		pdf.CellFormat(colWidth, 8, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	byDay := make(map[int][]GridCell)
	maxRows := 0
	for _, cell := range grid.Cells {
		byDay[cell.Day] = append(byDay[cell.Day], cell)
	}
	for day := range byDay {
		sort.SliceStable(byDay[day], func(i, j int) bool { return byDay[day][i].StartTime < byDay[day][j].StartTime })
		if len(byDay[day]) > maxRows {
			maxRows = len(byDay[day])
		}
	}

	pdf.SetFont("Arial", "", 8)
	for row := 0; row < maxRows; row++ {
		for day := range grid.DayLabels {
			text := ""
			fill := false
			if cells := byDay[day]; row < len(cells) {
				c := cells[row]
				text = fmt.Sprintf("%s-%s %s %s", c.StartTime, c.EndTime, c.Title, c.Subtitle)
				if r, g, b, ok := parseHexColor(c.ColorCode); ok {
					pdf.SetFillColor(r, g, b)
					fill = true
				}
			}
			pdf.CellFormat(colWidth, 12, text, "1", 0, "", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render timetable pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHexColor decodes "#rrggbb" into its channels.
func parseHexColor(raw string) (int, int, int, bool) {
	var r, g, b int
	if _, err := fmt.Sscanf(raw, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// SeatingPDF renders one page per room with students placed on their
// grid coordinates.
func SeatingPDF(charts []SeatingChart) ([]byte, error) {
	if len(charts) == 0 {
		return nil, fmt.Errorf("seating pdf requires at least one room")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	for _, chart := range charts {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - Room %s", chart.Title, chart.RoomCode), "", 1, "C", false, 0, "")
		pdf.Ln(3)

		maxRow, maxCol := 0, 0
		for _, seat := range chart.Seats {
			if seat.Row > maxRow {
				maxRow = seat.Row
			}
			if seat.Col > maxCol {
				maxCol = seat.Col
			}
		}
		byCell := make(map[[2]int]string, len(chart.Seats))
		for _, seat := range chart.Seats {
			byCell[[2]int{seat.Row, seat.Col}] = seat.Label
		}

		cellWidth := 190.0 / float64(maxCol+1)
		pdf.SetFont("Arial", "", 7)
		for row := 0; row <= maxRow; row++ {
			for col := 0; col <= maxCol; col++ {
				pdf.CellFormat(cellWidth, 9, byCell[[2]int{row, col}], "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render seating pdf: %w", err)
	}
	return buf.Bytes(), nil
}
