package scheduling

import "sort"

// RoomKind mirrors the persisted room categories.
type RoomKind string

const (
	KindClassroom RoomKind = "CLASSROOM"
	KindLab       RoomKind = "LAB"
	KindHall      RoomKind = "HALL"
)

// Course is the snapshot of one course's weekly demand.
type Course struct {
	ID             string
	Code           string
	Name           string
	LectureHours   int
	TutorialHours  int
	PracticalHours int
	SelfStudyHours int
	Instructors    []string
}

// Primary returns the primary instructor ID, or empty when unassigned.
func (c Course) Primary() string {
	if len(c.Instructors) == 0 {
		return ""
	}
	return c.Instructors[0]
}

// Room is the snapshot of one bookable space.
type Room struct {
	ID       string
	Code     string
	Capacity int
	Kind     RoomKind
}

// Slot is a candidate weekly interval, times in minutes from midnight.
type Slot struct {
	ID    string
	Code  string
	Day   int
	Start int
	End   int
}

// Window is a usable interval of a resource on one day of the week.
type Window struct {
	Day   int
	Start int
	End   int
}

// Covers reports whether the window fully contains [start, end) on day.
func (w Window) Covers(day, start, end int) bool {
	return w.Day == day && w.Start <= start && w.End >= end
}

// Catalog is the read-only snapshot a scheduling run executes against.
// It is assembled up front; no algorithm touches storage mid-run.
type Catalog struct {
	Courses  []Course
	Slots    []Slot
	Rooms    []Room
	Sections []string

	ProfWindows map[string][]Window
	RoomWindows map[string][]Window
	Blackouts   []Window
}

// Normalize applies the deterministic orderings every run depends on:
// courses by code, slots by (day, start), sections ascending. Rooms keep
// their given order; callers pick per-use sort direction via RoomsOfKind.
func (c *Catalog) Normalize() {
	sort.SliceStable(c.Courses, func(i, j int) bool { return c.Courses[i].Code < c.Courses[j].Code })
	sort.SliceStable(c.Slots, func(i, j int) bool {
		if c.Slots[i].Day == c.Slots[j].Day {
			return c.Slots[i].Start < c.Slots[j].Start
		}
		return c.Slots[i].Day < c.Slots[j].Day
	})
	sort.Strings(c.Sections)
	if len(c.Sections) == 0 {
		c.Sections = []string{"A"}
	}
}

// RoomsOfKind returns rooms of the given kinds sorted by capacity.
// Ascending order serves class placement (smallest fitting room first);
// descending serves exam allocation (largest hall first).
func (c *Catalog) RoomsOfKind(ascending bool, kinds ...RoomKind) []Room {
	var rooms []Room
	for _, room := range c.Rooms {
		for _, kind := range kinds {
			if room.Kind == kind {
				rooms = append(rooms, room)
				break
			}
		}
	}
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Capacity == rooms[j].Capacity {
			return rooms[i].Code < rooms[j].Code
		}
		if ascending {
			return rooms[i].Capacity < rooms[j].Capacity
		}
		return rooms[i].Capacity > rooms[j].Capacity
	})
	return rooms
}

// ProfAvailable reports whether some declared window of the professor fully
// covers [start, end) on day.
func (c *Catalog) ProfAvailable(professorID string, day, start, end int) bool {
	for _, w := range c.ProfWindows[professorID] {
		if w.Covers(day, start, end) {
			return true
		}
	}
	return false
}

// RoomAvailable reports whether some declared window of the room fully
// covers [start, end) on day.
func (c *Catalog) RoomAvailable(roomID string, day, start, end int) bool {
	for _, w := range c.RoomWindows[roomID] {
		if w.Covers(day, start, end) {
			return true
		}
	}
	return false
}

// BlackedOut reports whether [start, end) on day overlaps any blackout
// window (meal hours).
func (c *Catalog) BlackedOut(day, start, end int) bool {
	for _, b := range c.Blackouts {
		if b.Day == day && overlaps(b.Start, b.End, start, end) {
			return true
		}
	}
	return false
}
