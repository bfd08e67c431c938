package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClubRepo is an in-memory ClubRepository for tests.
type fakeClubRepo struct {
	clubs map[string]*domain.Club
	teams map[string][]*domain.Team
}

func newFakeClubRepo(clubs ...*domain.Club) *fakeClubRepo {
	f := &fakeClubRepo{
		clubs: make(map[string]*domain.Club),
		teams: make(map[string][]*domain.Team),
	}
	for _, c := range clubs {
		f.clubs[c.ID] = c
	}
	return f
}

func (f *fakeClubRepo) List(ctx context.Context) ([]*domain.Club, error) {
	out := make([]*domain.Club, 0, len(f.clubs))
	for _, c := range f.clubs {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClubRepo) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	if c, ok := f.clubs[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClubRepo) ListTeams(ctx context.Context, clubID string) ([]*domain.Team, error) {
	teams := f.teams[clubID]
	if teams == nil {
		teams = []*domain.Team{}
	}
	return teams, nil
}

func (f *fakeClubRepo) UpdateName(ctx context.Context, id, name string) error {
	c, ok := f.clubs[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Name = name
	return nil
}

func newClubFixture() (domain.ClubService, *fakeClubRepo, *fakeMemberships) {
	repo := newFakeClubRepo(&domain.Club{ID: "club-1", Name: "Robotics", CreatedAt: time.Now()})
	repo.teams["club-1"] = []*domain.Team{
		{ID: "team-1", ClubID: "club-1", Name: "General", IsDefault: true},
	}
	members := newFakeMemberships()
	members.adminOf["admin-1"] = "club-1"
	svc := NewClubService(repo, members, NewAuthorizer(members), testTimeout)
	return svc, repo, members
}

func TestClubService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees club and teams", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		club, teams, err := svc.Get(ctx, "club-1", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, "Robotics", club.Name)
		require.Len(t, teams, 1)
		assert.True(t, teams[0].IsDefault)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		_, _, err := svc.Get(ctx, "club-1", "user-1")
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})

	t.Run("admin of another club forbidden", func(t *testing.T) {
		svc, _, members := newClubFixture()
		members.adminOf["admin-2"] = "club-2"
		_, _, err := svc.Get(ctx, "club-1", "admin-2")
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})
}

func TestClubService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := newClubFixture()
		require.NoError(t, svc.Rename(ctx, "club-1", "admin-1", "  Robotics Society  "))
		assert.Equal(t, "Robotics Society", repo.clubs["club-1"].Name)
	})

	t.Run("empty name", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		require.Error(t, svc.Rename(ctx, "club-1", "admin-1", "   "))
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		err := svc.Rename(ctx, "club-1", "user-1", "New Name")
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})
}

func TestClubService_SetPresident(t *testing.T) {
	ctx := context.Background()

	t.Run("admin assigns president", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		require.NoError(t, svc.SetPresident(ctx, "club-1", "admin-1", "user-1"))
		pres, err := svc.GetPresident(ctx, "club-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", pres.UserID)
		assert.Equal(t, "admin-1", pres.AssignedBy)
	})

	t.Run("reassignment replaces the president", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		require.NoError(t, svc.SetPresident(ctx, "club-1", "admin-1", "user-1"))
		require.NoError(t, svc.SetPresident(ctx, "club-1", "admin-1", "user-2"))
		pres, err := svc.GetPresident(ctx, "club-1")
		require.NoError(t, err)
		assert.Equal(t, "user-2", pres.UserID)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		err := svc.SetPresident(ctx, "club-1", "user-1", "user-2")
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})

	t.Run("no president assigned", func(t *testing.T) {
		svc, _, _ := newClubFixture()
		_, err := svc.GetPresident(ctx, "club-1")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
