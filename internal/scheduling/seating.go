package scheduling

import (
	"math"
	"math/rand"
)

// SeatingRoom is the seating placer's view of one exam room allocation.
type SeatingRoom struct {
	RoomID       string
	RoomCapacity int
	CapacityUsed int
}

// Seat pins one student to a grid cell in one room.
type Seat struct {
	RoomID    string
	StudentID string
	Row       int
	Col       int
}

// SeatingResult reports one seating run. Unseated counts enrolled students
// beyond the rooms' combined used capacity.
type SeatingResult struct {
	Seats    []Seat
	Seated   int
	Unseated int
}

// PlanSeating lays out students per room on a rectangular grid with
// rows = floor(sqrt(room capacity)) and cols sized to cover the capacity.
// Each room consumes the next capacity_used students of the enrolled list;
// that chunk is
// shuffled (mixed seating, so neighbours do not follow roll-number order)
// and placed advancing by two columns and two rows for spacing. When the
// spaced walk revisits an occupied cell after wrapping, the next free cell
// in row-major order is used instead so no two students share a cell.
func PlanSeating(roomAllocs []SeatingRoom, students []string, rng *rand.Rand) SeatingResult {
	result := SeatingResult{}
	remaining := students

	for _, alloc := range roomAllocs {
		rows := int(math.Sqrt(float64(alloc.RoomCapacity)))
		if rows < 1 {
			rows = 1
		}
		cols := (alloc.RoomCapacity + rows - 1) / rows
		if cols < 1 {
			cols = 1
		}

		take := min(alloc.CapacityUsed, len(remaining))
		roomStudents := make([]string, take)
		copy(roomStudents, remaining[:take])
		remaining = remaining[take:]
		rng.Shuffle(len(roomStudents), func(i, j int) {
			roomStudents[i], roomStudents[j] = roomStudents[j], roomStudents[i]
		})

		occupied := make(map[[2]int]struct{}, take)
		r, c := 0, 0
		placedInRoom := 0

		for _, student := range roomStudents {
			if placedInRoom >= alloc.CapacityUsed {
				break
			}

			row, col, ok := freeCell(occupied, r, c, rows, cols)
			if !ok {
				break
			}
			occupied[[2]int{row, col}] = struct{}{}
			result.Seats = append(result.Seats, Seat{RoomID: alloc.RoomID, StudentID: student, Row: row, Col: col})
			result.Seated++
			placedInRoom++

			// Advance with one empty seat and one empty row of spacing,
			// wrapping the row back to the top of the grid.
			c += 2
			if c >= cols {
				c = 0
				r += 2
				if r >= rows {
					r = 0
				}
			}
		}
	}

	result.Unseated = max(0, len(students)-result.Seated)
	return result
}

// freeCell returns (r, c) when unoccupied, otherwise the first free cell in
// row-major order. Reports false when the grid is full.
func freeCell(occupied map[[2]int]struct{}, r, c, rows, cols int) (int, int, bool) {
	if _, taken := occupied[[2]int{r, c}]; !taken {
		return r, c, true
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if _, taken := occupied[[2]int{row, col}]; !taken {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}
