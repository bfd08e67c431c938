package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"eventhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMembershipRepository_IsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin of club", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT 1 FROM admins WHERE user_id = \$1 AND club_id = \$2`).
			WithArgs("user-1", "club-1").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		repo := NewMembershipRepository(db)
		ok, err := repo.IsAdmin(ctx, "user-1", "club-1")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row is false not error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT 1 FROM admins WHERE user_id = \$1 AND club_id = \$2`).
			WithArgs("user-2", "club-1").
			WillReturnError(sql.ErrNoRows)

		repo := NewMembershipRepository(db)
		ok, err := repo.IsAdmin(ctx, "user-2", "club-1")
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure is an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT 1 FROM admins`).
			WillReturnError(sql.ErrConnDone)

		repo := NewMembershipRepository(db)
		ok, err := repo.IsAdmin(ctx, "user-1", "club-1")
		require.Error(t, err)
		require.False(t, ok)
	})
}

func TestMembershipRepository_AdminClubID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT club_id FROM admins WHERE user_id = \$1`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"club_id"}).AddRow("club-1"))

		repo := NewMembershipRepository(db)
		clubID, err := repo.AdminClubID(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, "club-1", clubID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not an admin anywhere", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT club_id FROM admins WHERE user_id = \$1`).
			WithArgs("user-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewMembershipRepository(db)
		clubID, err := repo.AdminClubID(ctx, "user-2")
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Empty(t, clubID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMembershipRepository_GetPresident(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, club_id, assigned_by FROM club_presidents WHERE club_id = \$1`).
			WithArgs("club-1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "club_id", "assigned_by"}).
				AddRow("user-1", "club-1", "admin-1"))

		repo := NewMembershipRepository(db)
		got, err := repo.GetPresident(ctx, "club-1")
		require.NoError(t, err)
		require.Equal(t, &domain.ClubPresident{UserID: "user-1", ClubID: "club-1", AssignedBy: "admin-1"}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("none assigned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, club_id, assigned_by FROM club_presidents WHERE club_id = \$1`).
			WithArgs("club-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewMembershipRepository(db)
		got, err := repo.GetPresident(ctx, "club-2")
		require.Nil(t, got)
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMembershipRepository_SetPresident(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO club_presidents \(user_id, club_id, assigned_by\)\s+VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(club_id\) DO UPDATE`).
		WithArgs("user-1", "club-1", "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMembershipRepository(db)
	err = repo.SetPresident(ctx, &domain.ClubPresident{UserID: "user-1", ClubID: "club-1", AssignedBy: "admin-1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
