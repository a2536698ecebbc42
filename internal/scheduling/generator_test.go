package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allWeekWindows declares availability covering 08:00-18:00 on days 0-4.
func allWeekWindows() []Window {
	windows := make([]Window, 0, 5)
	for day := 0; day < 5; day++ {
		windows = append(windows, Window{Day: day, Start: 480, End: 1080})
	}
	return windows
}

func testCatalog() *Catalog {
	return &Catalog{
		Courses: []Course{
			{ID: "course-1", Code: "CS101", Name: "Algorithms", LectureHours: 2, Instructors: []string{"prof-1"}},
		},
		Slots: []Slot{
			{ID: "slot-1", Code: "MON-1", Day: 0, Start: 540, End: 600},
			{ID: "slot-2", Code: "MON-2", Day: 0, Start: 660, End: 720},
			{ID: "slot-3", Code: "TUE-1", Day: 1, Start: 540, End: 600},
			{ID: "slot-4", Code: "WED-1", Day: 2, Start: 540, End: 600},
		},
		Rooms: []Room{
			{ID: "room-1", Code: "C-101", Capacity: 60, Kind: KindClassroom},
		},
		Sections: []string{"A"},
		ProfWindows: map[string][]Window{
			"prof-1": allWeekWindows(),
			"prof-2": allWeekWindows(),
		},
		RoomWindows: map[string][]Window{
			"room-1": allWeekWindows(),
			"room-2": allWeekWindows(),
			"lab-1":  allWeekWindows(),
		},
	}
}

func TestGeneratorPlacesLecturesOnDistinctDays(t *testing.T) {
	result := NewGenerator().Run(testCatalog())

	require.Equal(t, StatusSuccess, result.Status)
	assert.Empty(t, result.Conflicts)
	require.Len(t, result.Sessions, 2)

	days := map[int]bool{}
	for _, s := range result.Sessions {
		assert.Equal(t, "course-1", s.CourseID)
		assert.False(t, s.IsTutorial)
		assert.False(t, s.IsPractical)
		assert.NotEmpty(t, s.ColorCode)
		days[slotDay(t, testCatalog(), s.SlotID)] = true
	}
	assert.Len(t, days, 2, "the two lectures must land on two distinct days")
}

func TestGeneratorOnePerDayLimitsSingleDayCatalog(t *testing.T) {
	cat := testCatalog()
	cat.Slots = []Slot{
		{ID: "slot-1", Code: "MON-1", Day: 0, Start: 540, End: 600},
		{ID: "slot-2", Code: "MON-2", Day: 0, Start: 660, End: 720},
	}

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusPartial, result.Status)
	assert.Len(t, result.Sessions, 1)
	assert.Contains(t, result.Conflicts, "Could not place 1 lecture(s) for CS101 section A")
}

func TestGeneratorReportsMissingInstructors(t *testing.T) {
	cat := testCatalog()
	cat.Courses[0].Instructors = nil

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusPartial, result.Status)
	assert.Empty(t, result.Sessions)
	assert.Equal(t, []string{"No instructors for course CS101"}, result.Conflicts)
}

func TestGeneratorErrorsOnEmptyEssentials(t *testing.T) {
	cat := testCatalog()
	cat.Rooms = nil

	result := NewGenerator().Run(cat)

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "missing essential data (courses, slots, or rooms)", result.Message)
	assert.Empty(t, result.Sessions)
}

func TestGeneratorNeverDoubleBooksRoom(t *testing.T) {
	cat := testCatalog()
	cat.Courses = []Course{
		{ID: "course-1", Code: "CS101", LectureHours: 1, Instructors: []string{"prof-1"}},
		{ID: "course-2", Code: "CS102", LectureHours: 1, Instructors: []string{"prof-2"}},
	}
	// One room, one slot: only one course can win the placement.
	cat.Slots = cat.Slots[:1]

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusPartial, result.Status)
	assert.Len(t, result.Sessions, 1)
	assert.Equal(t, "course-1", result.Sessions[0].CourseID)
	assert.Contains(t, result.Conflicts, "Could not place 1 lecture(s) for CS102 section A")
}

func TestGeneratorEnforcesInstructorBreak(t *testing.T) {
	cat := testCatalog()
	cat.Courses = []Course{
		{ID: "course-1", Code: "CS101", LectureHours: 1, Instructors: []string{"prof-1"}},
		{ID: "course-2", Code: "CS102", LectureHours: 1, Instructors: []string{"prof-1"}},
	}
	// Ten minutes between the slots: under the 15 minute floor.
	cat.Slots = []Slot{
		{ID: "slot-1", Code: "MON-1", Day: 0, Start: 540, End: 600},
		{ID: "slot-2", Code: "MON-2", Day: 0, Start: 610, End: 670},
	}
	cat.Rooms = append(cat.Rooms, Room{ID: "room-2", Code: "C-102", Capacity: 60, Kind: KindClassroom})

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusPartial, result.Status)
	assert.Len(t, result.Sessions, 1)
	assert.Contains(t, result.Conflicts, "Could not place 1 lecture(s) for CS102 section A")
}

func TestGeneratorAllowsBackToBackWithSufficientBreak(t *testing.T) {
	cat := testCatalog()
	cat.Courses = []Course{
		{ID: "course-1", Code: "CS101", LectureHours: 1, Instructors: []string{"prof-1"}},
		{ID: "course-2", Code: "CS102", LectureHours: 1, Instructors: []string{"prof-1"}},
	}
	cat.Slots = []Slot{
		{ID: "slot-1", Code: "MON-1", Day: 0, Start: 540, End: 600},
		{ID: "slot-2", Code: "MON-2", Day: 0, Start: 615, End: 675},
	}

	result := NewGenerator().Run(cat)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Len(t, result.Sessions, 2)
}

func TestGeneratorRoutesPracticalsToLabs(t *testing.T) {
	cat := testCatalog()
	cat.Courses = []Course{
		{ID: "course-1", Code: "CS101", PracticalHours: 2, Instructors: []string{"prof-1"}},
	}
	cat.Rooms = append(cat.Rooms, Room{ID: "lab-1", Code: "L-201", Capacity: 30, Kind: KindLab})

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Sessions, 2)
	for _, s := range result.Sessions {
		assert.True(t, s.IsPractical)
		assert.Equal(t, "lab-1", s.RoomID)
	}
}

func TestGeneratorSkipsBlackedOutSlots(t *testing.T) {
	cat := testCatalog()
	cat.Courses[0].LectureHours = 1
	cat.Slots = []Slot{{ID: "slot-1", Code: "MON-1", Day: 0, Start: 540, End: 600}}
	cat.Blackouts = []Window{{Day: 0, Start: 570, End: 630}}

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusPartial, result.Status)
	assert.Empty(t, result.Sessions)
}

func TestGeneratorRespectsDeclaredAvailability(t *testing.T) {
	cat := testCatalog()
	cat.Courses[0].LectureHours = 1
	// Professor only declares Tuesday; the Monday slots must be skipped.
	cat.ProfWindows["prof-1"] = []Window{{Day: 1, Start: 480, End: 1080}}

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Sessions, 1)
	assert.Equal(t, "slot-3", result.Sessions[0].SlotID)
}

func TestGeneratorCoversEverySection(t *testing.T) {
	cat := testCatalog()
	cat.Courses[0].LectureHours = 1
	cat.Sections = []string{"B", "A"}
	cat.Rooms = append(cat.Rooms, Room{ID: "room-2", Code: "C-102", Capacity: 60, Kind: KindClassroom})

	result := NewGenerator().Run(cat)

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 2, result.SectionsProcessed)
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, "A", result.Sessions[0].Section)
	assert.Equal(t, "B", result.Sessions[1].Section)
}

func TestGeneratorSelfStudyDistribution(t *testing.T) {
	cat := testCatalog()
	cat.Courses[0].SelfStudyHours = 7

	result := NewGenerator().Run(cat)

	require.Contains(t, result.SelfStudy, "CS101")
	assert.Equal(t, SelfStudyPlan{PerDay: 1, Remainder: 2}, result.SelfStudy["CS101"])
}

func TestGeneratorIsDeterministic(t *testing.T) {
	first := NewGenerator().Run(testCatalog())
	second := NewGenerator().Run(testCatalog())

	assert.Equal(t, first.Sessions, second.Sessions)
	assert.Equal(t, first.Conflicts, second.Conflicts)
}

func slotDay(t *testing.T, cat *Catalog, slotID string) int {
	t.Helper()
	for _, slot := range cat.Slots {
		if slot.ID == slotID {
			return slot.Day
		}
	}
	t.Fatalf("unknown slot %s", slotID)
	return -1
}
