package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftPeriod string

const (
	ShiftMorning ShiftPeriod = "M"
	ShiftEvening ShiftPeriod = "E"
	ShiftNight   ShiftPeriod = "N"
)

type DutyType string

const (
	DutyMorning  DutyType = "M"
	DutyEvening  DutyType = "E"
	DutyNight    DutyType = "N"
	DutyDayOff   DutyType = "DO"
	DutySpecial  DutyType = "SD"
	DutyVacation DutyType = "VL"
)

// RosterAssignment is one cell of the roster grid: one user's duty on one
// day/shift-period. Rows exist only for non-empty duty types; clearing a cell
// means the row is absent.
type RosterAssignment struct {
	ID          string      `gorm:"type:uuid;primarykey" json:"id"`
	RosterID    string      `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_cell" json:"roster_id"`
	UserID      string      `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_cell;index" json:"user_id"`
	Day         int         `gorm:"not null;uniqueIndex:idx_assignments_cell" json:"day"`
	ShiftPeriod ShiftPeriod `gorm:"type:varchar(5);not null;uniqueIndex:idx_assignments_cell" json:"shift_period"`
	DutyType    DutyType    `gorm:"type:varchar(5);not null" json:"duty_type"`
	IsOvertime  bool        `gorm:"not null;default:false" json:"is_overtime"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations
	Roster Roster `gorm:"foreignKey:RosterID" json:"roster,omitempty"`
}

func (a *RosterAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
