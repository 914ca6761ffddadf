package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

type fakeTeamRepo struct {
	teams       []models.Team
	memberships []models.TeamMembership
	notices     []models.TeamNotice
	createErr   error
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if f.createErr != nil {
		return f.createErr
	}
	team.ID = uint(len(f.teams) + 1)
	f.teams = append(f.teams, *team)
	return nil
}

func (f *fakeTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	out := make([]models.Team, len(f.teams))
	copy(out, f.teams)
	for i := range out {
		out[i].Members = f.membersOf(out[i].ID)
	}
	return out, nil
}

func (f *fakeTeamRepo) membersOf(teamID uint) []models.TeamMembership {
	var members []models.TeamMembership
	for _, m := range f.memberships {
		if m.TeamID == teamID {
			members = append(members, m)
		}
	}
	return members
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id uint) (models.Team, error) {
	for _, team := range f.teams {
		if team.ID == id {
			team.Members = f.membersOf(id)
			return team, nil
		}
	}
	return models.Team{}, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	for i := range f.teams {
		if f.teams[i].ID == team.ID {
			f.teams[i] = *team
		}
	}
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id uint) error {
	kept := f.teams[:0]
	for _, team := range f.teams {
		if team.ID != id {
			kept = append(kept, team)
		}
	}
	f.teams = kept
	return nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, membership *models.TeamMembership) error {
	for _, m := range f.memberships {
		if m.TeamID == membership.TeamID && m.StudentID == membership.StudentID {
			return repository.ErrAlreadyMember
		}
	}
	membership.ID = uint(len(f.memberships) + 1)
	f.memberships = append(f.memberships, *membership)
	return nil
}

func (f *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, studentID uint) error {
	kept := f.memberships[:0]
	for _, m := range f.memberships {
		if m.TeamID != teamID || m.StudentID != studentID {
			kept = append(kept, m)
		}
	}
	f.memberships = kept
	return nil
}

func (f *fakeTeamRepo) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	return int64(len(f.membersOf(teamID))), nil
}

func (f *fakeTeamRepo) ListTeamsForStudent(ctx context.Context, studentID uint) ([]models.Team, error) {
	var out []models.Team
	for _, m := range f.memberships {
		if m.StudentID == studentID {
			if team, err := f.GetByID(ctx, m.TeamID); err == nil {
				out = append(out, team)
			}
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) CreateNotice(ctx context.Context, notice *models.TeamNotice) error {
	notice.ID = uint(len(f.notices) + 1)
	f.notices = append(f.notices, *notice)
	return nil
}

func (f *fakeTeamRepo) ListNotices(ctx context.Context, teamID uint) ([]models.TeamNotice, error) {
	var out []models.TeamNotice
	for _, notice := range f.notices {
		if notice.TeamID == teamID {
			out = append(out, notice)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) DeleteNotice(ctx context.Context, id uint) error {
	kept := f.notices[:0]
	for _, notice := range f.notices {
		if notice.ID != id {
			kept = append(kept, notice)
		}
	}
	f.notices = kept
	return nil
}

func newTeamFixture() (*fakeTeamRepo, *fakeStudentRepo, TeamService) {
	teams := &fakeTeamRepo{}
	students := &fakeStudentRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewTeamService(teams, students, validate, testLogger())
	return teams, students, svc
}

func TestCreateTeamDuplicateName(t *testing.T) {
	teams, _, svc := newTeamFixture()

	created, err := svc.Create(context.Background(), dto.TeamCreateRequest{Name: "Choir", Capacity: 10}, "admin")
	require.NoError(t, err)
	require.Equal(t, "Choir", created.Name)
	require.Equal(t, "admin", created.CreatedBy)

	teams.createErr = gorm.ErrDuplicatedKey
	_, err = svc.Create(context.Background(), dto.TeamCreateRequest{Name: "Choir"}, "admin")
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "A team with this name already exists", be.Message)
}

func TestJoinEnforcesOneTeamRule(t *testing.T) {
	teams, students, svc := newTeamFixture()
	teams.teams = []models.Team{
		{ID: 1, Name: "Choir"},
		{ID: 2, Name: "Ushers"},
	}
	students.students = []models.Student{{ID: 7, Username: "abebe"}}

	require.NoError(t, svc.Join(context.Background(), 1, 7))

	err := svc.Join(context.Background(), 2, 7)
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "You are already a member of a team. Leave your current team first.", be.Message)

	// After leaving, joining another team works.
	require.NoError(t, svc.Leave(context.Background(), 1, 7))
	require.NoError(t, svc.Join(context.Background(), 2, 7))
}

func TestJoinEnforcesCapacity(t *testing.T) {
	teams, students, svc := newTeamFixture()
	teams.teams = []models.Team{{ID: 1, Name: "Choir", Capacity: 1}}
	students.students = []models.Student{
		{ID: 7, Username: "abebe"},
		{ID: 8, Username: "kebede"},
	}

	require.NoError(t, svc.Join(context.Background(), 1, 7))

	err := svc.Join(context.Background(), 1, 8)
	be, ok := AsBusinessError(err)
	require.True(t, ok)
	require.Equal(t, "This team is full", be.Message)
}

func TestJoinUnknownTeamOrStudent(t *testing.T) {
	teams, _, svc := newTeamFixture()
	teams.teams = []models.Team{{ID: 1, Name: "Choir"}}

	require.ErrorIs(t, svc.Join(context.Background(), 9, 7), ErrTeamNotFound)
	require.ErrorIs(t, svc.Join(context.Background(), 1, 7), ErrStudentNotFound)
}

func TestTeamViewsIncludeMemberCount(t *testing.T) {
	teams, students, svc := newTeamFixture()
	teams.teams = []models.Team{{ID: 1, Name: "Choir"}}
	students.students = []models.Student{{ID: 7, Username: "abebe"}}
	teams.memberships = []models.TeamMembership{{
		ID:        1,
		TeamID:    1,
		StudentID: 7,
		JoinedAt:  time.Now(),
		Student:   students.students[0],
	}}

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, 1, views[0].MemberCount)
	require.Equal(t, "abebe", views[0].Members[0].Username)

	view, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, view.MemberCount)

	_, err = svc.Get(context.Background(), 9)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamNotices(t *testing.T) {
	teams, _, svc := newTeamFixture()
	teams.teams = []models.Team{{ID: 1, Name: "Choir"}}

	created, err := svc.CreateNotice(context.Background(), 1, dto.TeamNoticeRequest{
		Title: "Rehearsal",
		Body:  `Friday at 6 <script>alert("x")</script>`,
	}, "admin")
	require.NoError(t, err)
	require.NotContains(t, created.Body, "<script>")

	_, err = svc.CreateNotice(context.Background(), 9, dto.TeamNoticeRequest{Title: "Rehearsal", Body: "Friday"}, "admin")
	require.ErrorIs(t, err, ErrTeamNotFound)

	notices, err := svc.ListNotices(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, notices, 1)

	require.NoError(t, svc.DeleteNotice(context.Background(), created.ID))
	notices, err = svc.ListNotices(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, notices)
}
