package scheduling

import (
	"sort"

	"github.com/samber/lo"
)

// ExamCourse is the exam scheduler's view of one course: enrolled head
// count and the distinct batch labels of its students.
type ExamCourse struct {
	ID       string
	Code     string
	Enrolled int
	Batches  []string
}

// PlannedAllocation reserves capacity of one room for a planned exam.
type PlannedAllocation struct {
	RoomID       string
	CapacityUsed int
}

// PlannedExam is one scheduled examination. Day is a 0-6 offset the caller
// maps onto calendar dates. Fallback marks exams placed by the degraded
// path that ignores batch clashes.
type PlannedExam struct {
	CourseID    string
	Day         int
	Start       int
	End         int
	Allocations []PlannedAllocation
	Fallback    bool
}

// ExamPlan is the result of one global exam scheduling run.
type ExamPlan struct {
	Exams []PlannedExam
}

// PlanExams allocates exam days and rooms. Courses are processed in
// descending enrolled order (ties by code) so large courses get first
// choice of day. A day is eligible when it has room availability and no
// batch of the course already examines on it. The exam interval is the
// widest envelope over that day's availability windows.
func PlanExams(courses []ExamCourse, rooms []Room, roomWindows map[string][]Window) ExamPlan {
	examRooms := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Kind == KindHall || room.Kind == KindClassroom {
			examRooms = append(examRooms, room)
		}
	}
	sort.SliceStable(examRooms, func(i, j int) bool {
		if examRooms[i].Capacity == examRooms[j].Capacity {
			return examRooms[i].Code < examRooms[j].Code
		}
		return examRooms[i].Capacity > examRooms[j].Capacity
	})

	windowsByDay := make(map[int][]Window)
	for _, windows := range roomWindows {
		for _, w := range windows {
			windowsByDay[w.Day] = append(windowsByDay[w.Day], w)
		}
	}

	sorted := make([]ExamCourse, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Enrolled == sorted[j].Enrolled {
			return sorted[i].Code < sorted[j].Code
		}
		return sorted[i].Enrolled > sorted[j].Enrolled
	})

	batchesUsed := make(map[int]map[string]struct{})
	var plan ExamPlan

	for _, course := range sorted {
		placed := false

		for day := 0; day < 7; day++ {
			windows := windowsByDay[day]
			if len(windows) == 0 {
				continue
			}
			used := batchesUsed[day]
			clash := lo.SomeBy(course.Batches, func(batch string) bool {
				_, ok := used[batch]
				return ok
			})
			if clash {
				continue
			}

			start, end := envelope(windows)
			exam := PlannedExam{CourseID: course.ID, Day: day, Start: start, End: end}

			if batchesUsed[day] == nil {
				batchesUsed[day] = make(map[string]struct{})
			}
			for _, batch := range course.Batches {
				batchesUsed[day][batch] = struct{}{}
			}

			remaining := course.Enrolled
			for _, room := range examRooms {
				if remaining <= 0 {
					break
				}
				seats := min(room.Capacity, remaining)
				exam.Allocations = append(exam.Allocations, PlannedAllocation{RoomID: room.ID, CapacityUsed: seats})
				remaining -= seats
			}

			plan.Exams = append(plan.Exams, exam)
			placed = true
			break
		}

		if !placed {
			// Best-effort degradation: take the first day with any
			// availability, ignoring batch clashes and room allocation.
			for day := 0; day < 7; day++ {
				windows := windowsByDay[day]
				if len(windows) == 0 {
					continue
				}
				start, end := envelope(windows)
				plan.Exams = append(plan.Exams, PlannedExam{
					CourseID: course.ID, Day: day, Start: start, End: end, Fallback: true,
				})
				break
			}
		}
	}

	return plan
}

func envelope(windows []Window) (int, int) {
	start := windows[0].Start
	end := windows[0].End
	for _, w := range windows[1:] {
		start = min(start, w.Start)
		end = max(end, w.End)
	}
	return start, end
}
