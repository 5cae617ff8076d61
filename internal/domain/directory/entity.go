package directory

import (
	"strings"
	"time"
)

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "active"
	StatusTerminated EmploymentStatus = "terminated"
)

// DepartmentOffice is the department label routed straight to the department
// heads instead of through room-level approvers.
const DepartmentOffice = "Department Office"

// Employee is a roster row. Title is the free-text position string from the
// registry; Level() classifies it into the closed enum used for routing.
type Employee struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Title        string           `json:"title"`
	Department   string           `json:"department"`
	Status       EmploymentStatus `json:"status"`
	PasswordHash string           `json:"-"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (e *Employee) Level() Level {
	return ClassifyLevel(e.Title)
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Approver is the projection of an employee offered as an approval candidate.
type Approver struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

func (e *Employee) AsApprover() Approver {
	return Approver{Name: e.Name, Title: e.Title, Department: e.Department}
}

// Level is the closed position rank used by approval routing.
type Level int

const (
	LevelUnknown Level = iota
	LevelStaff
	LevelTeamLead
	LevelResponsibleEngineer
	LevelRoomDirector
	LevelDeputyRoomDirector
	LevelDepartmentHead
	LevelDeputyDepartmentHead
)

func (l Level) String() string {
	switch l {
	case LevelStaff:
		return "staff"
	case LevelTeamLead:
		return "team_lead"
	case LevelResponsibleEngineer:
		return "responsible_engineer"
	case LevelRoomDirector:
		return "room_director"
	case LevelDeputyRoomDirector:
		return "deputy_room_director"
	case LevelDepartmentHead:
		return "department_head"
	case LevelDeputyDepartmentHead:
		return "deputy_department_head"
	default:
		return "unknown"
	}
}

// ClassifyLevel maps a free-text title to a Level. Registry titles carry
// grades and suffixes ("Room Director Grade 2", "Deputy Room Director /
// Safety"), so matching is substring based on a normalized form. More
// specific titles are tested first so "Deputy Room Director" never
// classifies as RoomDirector.
func ClassifyLevel(title string) Level {
	t := normalizeTitle(title)
	switch {
	case strings.Contains(t, "deputydepartmenthead"):
		return LevelDeputyDepartmentHead
	case strings.Contains(t, "departmenthead"):
		return LevelDepartmentHead
	case strings.Contains(t, "deputyroomdirector"):
		return LevelDeputyRoomDirector
	case strings.Contains(t, "roomdirector"):
		return LevelRoomDirector
	case strings.Contains(t, "responsibleengineer"):
		return LevelResponsibleEngineer
	case strings.Contains(t, "teamlead"):
		return LevelTeamLead
	case strings.Contains(t, "staff"):
		return LevelStaff
	default:
		return LevelUnknown
	}
}

func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '/', '.':
			return -1
		}
		return r
	}, t)
}
