package models

import "time"

// RoomKind categorises rooms for placement: labs host practicals,
// classrooms host lectures/tutorials, halls host examinations.
type RoomKind string

const (
	RoomKindClassroom RoomKind = "CLASSROOM"
	RoomKindLab       RoomKind = "LAB"
	RoomKindHall      RoomKind = "HALL"
)

// Room is a bookable physical space.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Building  string    `db:"building" json:"building"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Kind      RoomKind  `db:"kind" json:"kind"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
