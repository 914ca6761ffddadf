package models

import "time"

// Team is a ministry/service group students can join.
type Team struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Capacity    int              `gorm:"not null;default:0" json:"capacity"`
	CreatedBy   string           `gorm:"size:255" json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Members     []TeamMembership `json:"members,omitempty"`
}

// HasCapacityLimit reports whether the team caps its membership.
func (t Team) HasCapacityLimit() bool {
	return t.Capacity > 0
}

// TeamMembership links a student to a team. A student belongs to at most
// one team at a time.
type TeamMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_membership_team_student" json:"team_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_membership_team_student" json:"student_id"`
	JoinedAt  time.Time `json:"joined_at"`
	Team      Team      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"team"`
	Student   Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// TeamNotice is an announcement scoped to a single team.
type TeamNotice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null" json:"team_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedBy string    `gorm:"size:255" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	Team      Team      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"team"`
}
