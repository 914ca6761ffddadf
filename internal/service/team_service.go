package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrTeamNotFound indicates the team does not exist.
var ErrTeamNotFound = errors.New("team not found")

// TeamService manages ministry teams and memberships.
type TeamService interface {
	Create(ctx context.Context, payload dto.TeamCreateRequest, createdBy string) (models.Team, error)
	List(ctx context.Context) ([]dto.TeamView, error)
	Get(ctx context.Context, id uint) (dto.TeamView, error)
	Update(ctx context.Context, id uint, payload dto.TeamUpdateRequest) (models.Team, error)
	Delete(ctx context.Context, id uint) error

	Join(ctx context.Context, teamID, studentID uint) error
	Leave(ctx context.Context, teamID, studentID uint) error
	TeamsForStudent(ctx context.Context, studentID uint) ([]models.Team, error)

	CreateNotice(ctx context.Context, teamID uint, payload dto.TeamNoticeRequest, createdBy string) (models.TeamNotice, error)
	ListNotices(ctx context.Context, teamID uint) ([]models.TeamNotice, error)
	DeleteNotice(ctx context.Context, noticeID uint) error
}

type teamService struct {
	teams     repository.TeamRepository
	students  repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTeamService constructs the team service.
func NewTeamService(teamRepo repository.TeamRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) TeamService {
	return &teamService{
		teams:     teamRepo,
		students:  studentRepo,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "team_service").Logger(),
		now:       time.Now,
	}
}

func (s *teamService) Create(ctx context.Context, payload dto.TeamCreateRequest, createdBy string) (models.Team, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Team{}, NewBusinessError("Team name is required", CodeValidationError)
	}

	team := models.Team{
		Name:        payload.Name,
		Description: payload.Description,
		Capacity:    payload.Capacity,
		CreatedBy:   createdBy,
	}

	if err := s.teams.Create(ctx, &team); err != nil {
		if isDuplicateKey(err) {
			return models.Team{}, NewBusinessError("A team with this name already exists", "")
		}
		return models.Team{}, err
	}

	return team, nil
}

func newTeamView(team models.Team) dto.TeamView {
	view := dto.TeamView{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		Capacity:    team.Capacity,
		MemberCount: len(team.Members),
		CreatedAt:   team.CreatedAt,
	}
	for _, member := range team.Members {
		view.Members = append(view.Members, dto.MemberView{
			StudentID:       member.StudentID,
			Username:        member.Student.Username,
			FullNameEnglish: member.Student.FullNameEnglish,
			JoinedAt:        member.JoinedAt,
		})
	}

	return view
}

func (s *teamService) List(ctx context.Context) ([]dto.TeamView, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.TeamView, 0, len(teams))
	for _, team := range teams {
		views = append(views, newTeamView(team))
	}

	return views, nil
}

func (s *teamService) Get(ctx context.Context, id uint) (dto.TeamView, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamView{}, ErrTeamNotFound
		}
		return dto.TeamView{}, err
	}

	return newTeamView(team), nil
}

func (s *teamService) Update(ctx context.Context, id uint, payload dto.TeamUpdateRequest) (models.Team, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Team{}, NewBusinessError("Invalid team payload", CodeValidationError)
	}

	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Team{}, ErrTeamNotFound
		}
		return models.Team{}, err
	}

	if payload.Name != nil {
		team.Name = *payload.Name
	}
	if payload.Description != nil {
		team.Description = *payload.Description
	}
	if payload.Capacity != nil {
		team.Capacity = *payload.Capacity
	}

	if err := s.teams.Update(ctx, &team); err != nil {
		return models.Team{}, err
	}

	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id uint) error {
	if _, err := s.teams.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	return s.teams.Delete(ctx, id)
}

// Join adds a student, enforcing the capacity cap and the one-team rule.
func (s *teamService) Join(ctx context.Context, teamID, studentID uint) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	existing, err := s.teams.ListTeamsForStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return NewBusinessError("You are already a member of a team. Leave your current team first.", "")
	}

	if team.HasCapacityLimit() {
		count, err := s.teams.CountMembers(ctx, teamID)
		if err != nil {
			return err
		}
		if count >= int64(team.Capacity) {
			return NewBusinessError("This team is full", "")
		}
	}

	membership := models.TeamMembership{
		TeamID:    teamID,
		StudentID: studentID,
		JoinedAt:  s.now(),
	}

	if err := s.teams.AddMember(ctx, &membership); err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return NewBusinessError("You are already a member of this team", "")
		}
		return err
	}

	s.logger.Info().Uint("team_id", teamID).Uint("student_id", studentID).Msg("student joined team")

	return nil
}

func (s *teamService) Leave(ctx context.Context, teamID, studentID uint) error {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	return s.teams.RemoveMember(ctx, teamID, studentID)
}

func (s *teamService) TeamsForStudent(ctx context.Context, studentID uint) ([]models.Team, error) {
	return s.teams.ListTeamsForStudent(ctx, studentID)
}

func (s *teamService) CreateNotice(ctx context.Context, teamID uint, payload dto.TeamNoticeRequest, createdBy string) (models.TeamNotice, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.TeamNotice{}, NewBusinessError("Title and body are required", CodeValidationError)
	}

	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TeamNotice{}, ErrTeamNotFound
		}
		return models.TeamNotice{}, err
	}

	notice := models.TeamNotice{
		TeamID:    teamID,
		Title:     s.sanitizer.Sanitize(payload.Title),
		Body:      s.sanitizer.Sanitize(payload.Body),
		CreatedBy: createdBy,
	}

	if err := s.teams.CreateNotice(ctx, &notice); err != nil {
		return models.TeamNotice{}, err
	}

	return notice, nil
}

func (s *teamService) ListNotices(ctx context.Context, teamID uint) ([]models.TeamNotice, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	return s.teams.ListNotices(ctx, teamID)
}

func (s *teamService) DeleteNotice(ctx context.Context, noticeID uint) error {
	return s.teams.DeleteNotice(ctx, noticeID)
}
