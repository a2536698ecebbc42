package scheduling

// booking records one committed occupation of a resource.
type booking struct {
	day   int
	start int
	end   int
}

type courseSection struct {
	course  string
	section string
}

// Ledger is the per-run mutable bookkeeping of resource occupancy. It is
// built empty at the start of a generator run and discarded at the end.
type Ledger struct {
	minBreak   int
	profBooked map[string][]booking
	roomBooked map[string][]booking
	dayUsed    map[courseSection]map[int]struct{}
}

// NewLedger builds an empty ledger enforcing the given minimum break
// (minutes) between consecutive bookings of one professor.
func NewLedger(minBreak int) *Ledger {
	return &Ledger{
		minBreak:   minBreak,
		profBooked: make(map[string][]booking),
		roomBooked: make(map[string][]booking),
		dayUsed:    make(map[courseSection]map[int]struct{}),
	}
}

// ProfFree reports whether the professor can take [start, end) on day:
// no overlapping booking, and the minimum break separates the interval
// from every existing same-day booking on either side.
func (l *Ledger) ProfFree(professorID string, day, start, end int) bool {
	for _, b := range l.profBooked[professorID] {
		if b.day != day {
			continue
		}
		if overlaps(b.start, b.end, start, end) {
			return false
		}
		if b.end <= start && !breakRespected(b.end, start, l.minBreak) {
			return false
		}
		if end <= b.start && !breakRespected(end, b.start, l.minBreak) {
			return false
		}
	}
	return true
}

// RoomFree reports whether the room has no overlapping booking on day.
func (l *Ledger) RoomFree(roomID string, day, start, end int) bool {
	for _, b := range l.roomBooked[roomID] {
		if b.day == day && overlaps(b.start, b.end, start, end) {
			return false
		}
	}
	return true
}

// DayUsed reports whether the (course, section) pair already holds a
// non-practical session on day.
func (l *Ledger) DayUsed(courseID, section string, day int) bool {
	_, ok := l.dayUsed[courseSection{courseID, section}][day]
	return ok
}

// BookProf records a professor occupation.
func (l *Ledger) BookProf(professorID string, day, start, end int) {
	l.profBooked[professorID] = append(l.profBooked[professorID], booking{day, start, end})
}

// BookRoom records a room occupation.
func (l *Ledger) BookRoom(roomID string, day, start, end int) {
	l.roomBooked[roomID] = append(l.roomBooked[roomID], booking{day, start, end})
}

// MarkDay records that the (course, section) pair used day for a
// non-practical session.
func (l *Ledger) MarkDay(courseID, section string, day int) {
	key := courseSection{courseID, section}
	if l.dayUsed[key] == nil {
		l.dayUsed[key] = make(map[int]struct{})
	}
	l.dayUsed[key][day] = struct{}{}
}
