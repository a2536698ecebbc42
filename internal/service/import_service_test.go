package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

type courseImporterStub struct {
	byCode  map[string]*models.Course
	created int
	updated int
}

func newCourseImporterStub() *courseImporterStub {
	return &courseImporterStub{byCode: make(map[string]*models.Course)}
}

func (s *courseImporterStub) FindByCode(_ context.Context, code string) (*models.Course, error) {
	return s.byCode[code], nil
}

func (s *courseImporterStub) Create(_ context.Context, course *models.Course) error {
	course.ID = fmt.Sprintf("c-%d", len(s.byCode)+1)
	s.byCode[course.Code] = course
	s.created++
	return nil
}

func (s *courseImporterStub) Update(_ context.Context, course *models.Course) error {
	s.byCode[course.Code] = course
	s.updated++
	return nil
}

type professorImporterStub struct {
	byEmail map[string]*models.Professor
	created int
	updated int
}

func newProfessorImporterStub() *professorImporterStub {
	return &professorImporterStub{byEmail: make(map[string]*models.Professor)}
}

func (s *professorImporterStub) FindByEmail(_ context.Context, email string) (*models.Professor, error) {
	return s.byEmail[email], nil
}

func (s *professorImporterStub) Create(_ context.Context, professor *models.Professor) error {
	professor.ID = fmt.Sprintf("p-%d", len(s.byEmail)+1)
	s.byEmail[professor.Email] = professor
	s.created++
	return nil
}

func (s *professorImporterStub) Update(_ context.Context, professor *models.Professor) error {
	s.byEmail[professor.Email] = professor
	s.updated++
	return nil
}

type studentImporterStub struct {
	byRoll  map[string]*models.Student
	created int
	updated int
}

func newStudentImporterStub() *studentImporterStub {
	return &studentImporterStub{byRoll: make(map[string]*models.Student)}
}

func (s *studentImporterStub) FindByRollNumber(_ context.Context, roll string) (*models.Student, error) {
	return s.byRoll[roll], nil
}

func (s *studentImporterStub) Create(_ context.Context, student *models.Student) error {
	student.ID = fmt.Sprintf("st-%d", len(s.byRoll)+1)
	s.byRoll[student.RollNumber] = student
	s.created++
	return nil
}

func (s *studentImporterStub) Update(_ context.Context, student *models.Student) error {
	s.byRoll[student.RollNumber] = student
	s.updated++
	return nil
}

type roomImporterStub struct {
	byCode  map[string]*models.Room
	created int
	updated int
}

func newRoomImporterStub() *roomImporterStub {
	return &roomImporterStub{byCode: make(map[string]*models.Room)}
}

func (s *roomImporterStub) FindByCode(_ context.Context, code string) (*models.Room, error) {
	return s.byCode[code], nil
}

func (s *roomImporterStub) Create(_ context.Context, room *models.Room) error {
	room.ID = fmt.Sprintf("r-%d", len(s.byCode)+1)
	s.byCode[room.Code] = room
	s.created++
	return nil
}

func (s *roomImporterStub) Update(_ context.Context, room *models.Room) error {
	s.byCode[room.Code] = room
	s.updated++
	return nil
}

func importFixture() (*ImportService, *courseImporterStub, *professorImporterStub, *studentImporterStub, *roomImporterStub) {
	courses := newCourseImporterStub()
	professors := newProfessorImporterStub()
	students := newStudentImporterStub()
	rooms := newRoomImporterStub()
	svc := NewImportService(courses, professors, students, rooms, nil, zap.NewNop())
	return svc, courses, professors, students, rooms
}

func TestImportCoursesCreatesAndUpdates(t *testing.T) {
	svc, courses, professors, _, _ := importFixture()
	professors.byEmail["rao@example.edu"] = &models.Professor{ID: "p-9", Email: "rao@example.edu"}
	courses.byCode["CS101"] = &models.Course{ID: "c-9", Code: "CS101", Name: "Old Name"}

	csv := strings.Join([]string{
		"code,name,lecture_hours,tutorial_hours,practical_hours,self_study_hours,credits,instructor_email",
		"CS101,Programming,3,1,2,4,4,rao@example.edu",
		"MA101,Calculus,3,1,0,3,4,",
	}, "\n")

	result, err := svc.ImportCourses(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "c-9", courses.byCode["CS101"].ID)
	assert.Equal(t, "Programming", courses.byCode["CS101"].Name)
	assert.Equal(t, []string{"p-9"}, courses.byCode["CS101"].InstructorIDs)
	assert.Equal(t, 3, courses.byCode["MA101"].LectureHours)
}

func TestImportCoursesRejectsBadRows(t *testing.T) {
	svc, courses, _, _, _ := importFixture()

	csv := strings.Join([]string{
		"code,name,lecture_hours,tutorial_hours,practical_hours,self_study_hours,credits,instructor_email",
		",Nameless,3,0,0,0,4,",
		"CS101,Programming,three,0,0,0,4,",
		"EE101,Circuits,3,0,0,0,4,ghost@example.edu",
		"MA101,Calculus,3,1,0,3,4,",
	}, "\n")

	result, err := svc.ImportCourses(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "lecture_hours")
	assert.Contains(t, result.Errors[2].Message, "unknown instructor")
	assert.Equal(t, 1, courses.created)
}

func TestImportCoursesBlankHoursAreZero(t *testing.T) {
	svc, courses, _, _, _ := importFixture()

	csv := strings.Join([]string{
		"code,name,lecture_hours,tutorial_hours,practical_hours,self_study_hours,credits,instructor_email",
		"HS101,Ethics,,,,,,",
	}, "\n")

	result, err := svc.ImportCourses(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, courses.byCode["HS101"].LectureHours)
}

func TestImportProfessorsUpsert(t *testing.T) {
	svc, _, professors, _, _ := importFixture()
	professors.byEmail["rao@example.edu"] = &models.Professor{ID: "p-1", Email: "rao@example.edu", Name: "Old"}

	csv := strings.Join([]string{
		"name,email,department",
		"B. Rao,rao@example.edu,CSE",
		"S. Iyer,iyer@example.edu,EE",
		",blank@example.edu,EE",
	}, "\n")

	result, err := svc.ImportProfessors(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "B. Rao", professors.byEmail["rao@example.edu"].Name)
	assert.Equal(t, "p-1", professors.byEmail["rao@example.edu"].ID)
}

func TestImportStudentsUpsert(t *testing.T) {
	svc, _, _, students, _ := importFixture()
	students.byRoll["2023CS001"] = &models.Student{ID: "st-1", RollNumber: "2023CS001"}

	csv := strings.Join([]string{
		"roll_number,name,program,batch,section",
		"2023CS001,Asha Verma,BTech,2023,A",
		"2023CS002,Dev Patel,BTech,2023,B",
	}, "\n")

	result, err := svc.ImportStudents(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, "Asha Verma", students.byRoll["2023CS001"].Name)
	assert.Equal(t, "B", students.byRoll["2023CS002"].Section)
}

func TestImportRoomsValidatesKindAndCapacity(t *testing.T) {
	svc, _, _, _, rooms := importFixture()

	csv := strings.Join([]string{
		"code,name,building,capacity,kind",
		"CR-101,Room 101,Main,60,classroom",
		"LAB-1,Comp Lab,Annex,40,LAB",
		"X-1,Odd,Main,0,HALL",
		"X-2,Odd,Main,50,GARAGE",
	}, "\n")

	result, err := svc.ImportRooms(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, models.RoomKindClassroom, rooms.byCode["CR-101"].Kind)
	assert.Contains(t, result.Errors[0].Message, "capacity")
	assert.Contains(t, result.Errors[1].Message, "unknown room kind")
}
