package scheduling

// Duty assigns one professor to watch one exam room.
type Duty struct {
	ProfessorID string
	RoomID      string
}

// AssignInvigilators round-robins the professor roster (in stored order)
// across the exam's room allocations: room i gets professor i mod P. With
// P professors and R rooms duty counts differ by at most one. Returns nil
// when there are no professors.
func AssignInvigilators(professorIDs []string, roomIDs []string) []Duty {
	if len(professorIDs) == 0 {
		return nil
	}
	duties := make([]Duty, 0, len(roomIDs))
	for i, roomID := range roomIDs {
		duties = append(duties, Duty{
			ProfessorID: professorIDs[i%len(professorIDs)],
			RoomID:      roomID,
		})
	}
	return duties
}
