package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/models"
)

// ErrAlreadyMember is returned when a student is added to a team they already
// belong to.
var ErrAlreadyMember = errors.New("student is already a member of this team")

// TeamRepository stores ministry teams, their memberships and team notices.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id uint) (models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, membership *models.TeamMembership) error
	RemoveMember(ctx context.Context, teamID, studentID uint) error
	CountMembers(ctx context.Context, teamID uint) (int64, error)
	ListTeamsForStudent(ctx context.Context, studentID uint) ([]models.Team, error)

	CreateNotice(ctx context.Context, notice *models.TeamNotice) error
	ListNotices(ctx context.Context, teamID uint) ([]models.TeamNotice, error)
	DeleteNotice(ctx context.Context, id uint) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository constructs a team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.Student").
		Order("name ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uint) (models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.Student").
		First(&team, id).Error; err != nil {
		return models.Team{}, err
	}

	return team, nil
}

func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamNotice{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, id).Error
	})
}

func (r *teamRepository) AddMember(ctx context.Context, membership *models.TeamMembership) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TeamMembership{}).
		Where("team_id = ? AND student_id = ?", membership.TeamID, membership.StudentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyMember
	}

	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, studentID uint) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND student_id = ?", teamID, studentID).
		Delete(&models.TeamMembership{}).Error
}

func (r *teamRepository) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamMembership{}).
		Where("team_id = ?", teamID).
		Count(&count).Error

	return count, err
}

func (r *teamRepository) ListTeamsForStudent(ctx context.Context, studentID uint) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).
		Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.student_id = ?", studentID).
		Order("teams.name ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *teamRepository) CreateNotice(ctx context.Context, notice *models.TeamNotice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *teamRepository) ListNotices(ctx context.Context, teamID uint) ([]models.TeamNotice, error) {
	var notices []models.TeamNotice
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}

	return notices, nil
}

func (r *teamRepository) DeleteNotice(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TeamNotice{}, id).Error
}
