package scheduling

import "fmt"

// Run statuses shared by the generator and the reschedule engine.
const (
	StatusSuccess   = "success"
	StatusPartial   = "partial"
	StatusError     = "error"
	StatusNoChanges = "no_changes"
)

// PlacedSession is one committed placement produced by a generator run.
type PlacedSession struct {
	CourseID     string
	SlotID       string
	RoomID       string
	InstructorID string
	Section      string
	IsTutorial   bool
	IsPractical  bool
	ColorCode    string
}

// SelfStudyPlan is the informational even distribution of a course's
// self-study hours across the working week. Not placed as sessions.
type SelfStudyPlan struct {
	PerDay    int `json:"per_day"`
	Remainder int `json:"remainder"`
}

// GenerateResult reports one full generator run.
type GenerateResult struct {
	Sessions          []PlacedSession
	Conflicts         []string
	SectionsProcessed int
	SelfStudy         map[string]SelfStudyPlan
	Status            string
	Message           string
}

// Generator places weekly class sessions with greedy first-fit over the
// catalog's slot and room pools. It does not backtrack; unmet demand is
// reported, not fatal.
type Generator struct {
	// MinBreakMinutes separates consecutive bookings of one professor.
	MinBreakMinutes int
	// WorkingDays is the divisor for self-study distribution.
	WorkingDays int
}

// NewGenerator applies the standard tuning: a 15 minute break and a
// 5 day working week.
func NewGenerator() Generator {
	return Generator{MinBreakMinutes: 15, WorkingDays: 5}
}

// Run executes one full placement pass over the catalog. The catalog is
// normalized in place (stable sort keys) so repeated runs over an unchanged
// catalog produce the same session multiset.
func (g Generator) Run(cat *Catalog) GenerateResult {
	cat.Normalize()

	classrooms := cat.RoomsOfKind(true, KindClassroom)
	labs := cat.RoomsOfKind(true, KindLab)

	if len(cat.Courses) == 0 || len(cat.Slots) == 0 || len(classrooms) == 0 {
		return GenerateResult{
			Status:    StatusError,
			Message:   "missing essential data (courses, slots, or rooms)",
			SelfStudy: map[string]SelfStudyPlan{},
		}
	}

	colors := Palette(len(cat.Courses))
	colorByCourse := make(map[string]string, len(cat.Courses))
	for i, course := range cat.Courses {
		colorByCourse[course.ID] = colors[i]
	}

	ledger := NewLedger(g.MinBreakMinutes)
	selfStudy := make(map[string]SelfStudyPlan, len(cat.Courses))

	var sessions []PlacedSession
	var conflicts []string

	workingDays := g.WorkingDays
	if workingDays <= 0 {
		workingDays = 5
	}

	for _, section := range cat.Sections {
		for _, course := range cat.Courses {
			if len(course.Instructors) == 0 {
				conflicts = append(conflicts, fmt.Sprintf("No instructors for course %s", course.Code))
				continue
			}
			primary := course.Primary()

			lectureNeeded := course.LectureHours
			tutorialNeeded := course.TutorialHours
			practicalNeeded := course.PracticalHours

			selfStudy[course.Code] = SelfStudyPlan{
				PerDay:    course.SelfStudyHours / workingDays,
				Remainder: course.SelfStudyHours % workingDays,
			}

			for _, slot := range cat.Slots {
				if lectureNeeded <= 0 && tutorialNeeded <= 0 && practicalNeeded <= 0 {
					break
				}

				// Practical demand steers us to the lab pool for this slot.
				pool := classrooms
				if practicalNeeded > 0 {
					pool = labs
				}

				for _, room := range pool {
					if !g.canPlace(cat, ledger, course, primary, room, slot, section, practicalNeeded > 0) {
						continue
					}

					// Priority order: lecture, tutorial, practical. The first
					// outstanding need wins the slot; one instance per
					// (slot, room) evaluation.
					placed := false
					switch {
					case lectureNeeded > 0 && !ledger.DayUsed(course.ID, section, slot.Day):
						sessions = append(sessions, PlacedSession{
							CourseID: course.ID, SlotID: slot.ID, RoomID: room.ID,
							InstructorID: primary, Section: section,
							ColorCode: colorByCourse[course.ID],
						})
						ledger.MarkDay(course.ID, section, slot.Day)
						lectureNeeded--
						placed = true
					case tutorialNeeded > 0 && !ledger.DayUsed(course.ID, section, slot.Day):
						sessions = append(sessions, PlacedSession{
							CourseID: course.ID, SlotID: slot.ID, RoomID: room.ID,
							InstructorID: primary, Section: section, IsTutorial: true,
							ColorCode: colorByCourse[course.ID],
						})
						ledger.MarkDay(course.ID, section, slot.Day)
						tutorialNeeded--
						placed = true
					case practicalNeeded > 0:
						sessions = append(sessions, PlacedSession{
							CourseID: course.ID, SlotID: slot.ID, RoomID: room.ID,
							InstructorID: primary, Section: section, IsPractical: true,
							ColorCode: colorByCourse[course.ID],
						})
						practicalNeeded--
						placed = true
					}

					if placed {
						ledger.BookProf(primary, slot.Day, slot.Start, slot.End)
						ledger.BookRoom(room.ID, slot.Day, slot.Start, slot.End)
						break
					}
				}
			}

			if lectureNeeded > 0 {
				conflicts = append(conflicts, fmt.Sprintf("Could not place %d lecture(s) for %s section %s", lectureNeeded, course.Code, section))
			}
			if tutorialNeeded > 0 {
				conflicts = append(conflicts, fmt.Sprintf("Could not place %d tutorial(s) for %s section %s", tutorialNeeded, course.Code, section))
			}
			if practicalNeeded > 0 {
				conflicts = append(conflicts, fmt.Sprintf("Could not place %d practical(s) for %s section %s", practicalNeeded, course.Code, section))
			}
		}
	}

	status := StatusSuccess
	if len(conflicts) > 0 {
		status = StatusPartial
	}

	return GenerateResult{
		Sessions:          sessions,
		Conflicts:         conflicts,
		SectionsProcessed: len(cat.Sections),
		SelfStudy:         selfStudy,
		Status:            status,
	}
}

// canPlace evaluates every hard constraint for one candidate placement.
func (g Generator) canPlace(cat *Catalog, ledger *Ledger, course Course, instructorID string, room Room, slot Slot, section string, practical bool) bool {
	// One non-practical session of this (course, section) per day.
	if !practical && ledger.DayUsed(course.ID, section, slot.Day) {
		return false
	}
	if !cat.ProfAvailable(instructorID, slot.Day, slot.Start, slot.End) {
		return false
	}
	if !cat.RoomAvailable(room.ID, slot.Day, slot.Start, slot.End) {
		return false
	}
	if !ledger.ProfFree(instructorID, slot.Day, slot.Start, slot.End) {
		return false
	}
	if !ledger.RoomFree(room.ID, slot.Day, slot.Start, slot.End) {
		return false
	}
	if cat.BlackedOut(slot.Day, slot.Start, slot.End) {
		return false
	}
	return true
}
