package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
)

type recordingPusher struct {
	mu     sync.Mutex
	events []dto.CalendarEvent
}

func (p *recordingPusher) Enabled() bool { return true }

func (p *recordingPusher) Push(_ context.Context, event dto.CalendarEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestCalendarServiceSyncDisabledByDefault(t *testing.T) {
	timetables := newTimetableStoreStub("tt-1")
	sessions := newSessionStoreStub(t)
	svc := NewCalendarService(timetables, sessions, nil, zap.NewNop(), CalendarConfig{})
	svc.Start(context.Background())
	defer svc.Stop()

	resp, err := svc.Sync(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Enqueued)
	assert.Equal(t, "skipped", resp.Status)
	assert.Equal(t, "calendar not configured", resp.Note)
}

func TestCalendarServiceSyncEnqueuesSessions(t *testing.T) {
	timetables := newTimetableStoreStub("tt-1")
	sessions := newSessionStoreStub(t)
	sessions.details = []models.SessionDetail{
		{ID: "cs-1", CourseCode: "CS101", CourseName: "Programming", Section: "A", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00", RoomCode: "CR-101", InstructorName: "Rao"},
		{ID: "cs-2", CourseCode: "CS101", CourseName: "Programming", Section: "A", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", RoomCode: "CR-101", InstructorName: "Rao", IsTutorial: true},
	}
	pusher := &recordingPusher{}
	svc := NewCalendarService(timetables, sessions, pusher, zap.NewNop(), CalendarConfig{Workers: 2})
	svc.Start(context.Background())
	defer svc.Stop()

	resp, err := svc.Sync(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Enqueued)
	assert.Equal(t, "queued", resp.Status)

	require.Eventually(t, func() bool { return pusher.count() == 2 }, time.Second, 10*time.Millisecond)

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	titles := []string{pusher.events[0].Title, pusher.events[1].Title}
	assert.Contains(t, titles, "CS101 Programming (A)")
	assert.Equal(t, "CR-101", pusher.events[0].Location)
}
