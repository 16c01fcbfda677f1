package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"expensetracker/internal/core"
)

// RepositoryTestSuite runs every storage test against a fresh in-memory
// database with the migrations and category seed applied.
type RepositoryTestSuite struct {
	suite.Suite
	repo *Repository
	ctx  context.Context

	alice core.User
	bob   core.User
}

func (s *RepositoryTestSuite) SetupTest() {
	repo, err := New(":memory:")
	require.NoError(s.T(), err, "failed to open test database")
	s.repo = repo
	s.ctx = context.Background()

	s.alice = s.mustCreateUser("alice", "alice@example.com", "Alice Smith")
	s.bob = s.mustCreateUser("bob", "bob@example.com", "Bob Jones")
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.repo != nil {
		s.repo.Close()
	}
}

func (s *RepositoryTestSuite) mustCreateUser(username, email, fullName string) core.User {
	u, err := s.repo.CreateUser(s.ctx, core.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash:" + username,
		FullName:     fullName,
	})
	require.NoError(s.T(), err, "failed to create user %s", username)
	return u
}

func (s *RepositoryTestSuite) categoryID(name string) int64 {
	categories, err := s.repo.ListCategories(s.ctx)
	require.NoError(s.T(), err)
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	s.T().Fatalf("category %q not seeded", name)
	return 0
}

func (s *RepositoryTestSuite) addExpense(userID, categoryID, cents int64, description, date string) core.Expense {
	d, err := core.ParseDate(date)
	require.NoError(s.T(), err)
	e, err := s.repo.CreateExpense(s.ctx, core.Expense{
		UserID:        userID,
		CategoryID:    categoryID,
		Amount:        core.Money{Cents: cents},
		Description:   description,
		Date:          d,
		PaymentMethod: core.Cash,
	})
	require.NoError(s.T(), err, "failed to create expense %s", description)
	return e
}

func (s *RepositoryTestSuite) TestSeededCategories() {
	categories, err := s.repo.ListCategories(s.ctx)
	require.NoError(s.T(), err)
	assert.Len(s.T(), categories, 12)

	names := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		assert.True(s.T(), c.IsDefault, "seeded category %s should be a default", c.Name)
		names[c.Name] = c
	}
	food, ok := names["Food & Dining"]
	require.True(s.T(), ok, "Food & Dining must be seeded")
	assert.Equal(s.T(), "🍔", food.Icon)
	assert.Equal(s.T(), "#F56565", food.Color)
}

func (s *RepositoryTestSuite) TestGetCategory() {
	id := s.categoryID("Travel")
	c, err := s.repo.GetCategory(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Travel", c.Name)

	_, err = s.repo.GetCategory(s.ctx, 99999)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestCreateAndGetUser() {
	assert.Equal(s.T(), "alice", s.alice.Username)
	assert.Equal(s.T(), "alice@example.com", s.alice.Email)
	assert.True(s.T(), s.alice.IsActive)
	assert.NotZero(s.T(), s.alice.ID)

	got, err := s.repo.GetUserByID(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.alice.Username, got.Username)
	assert.Equal(s.T(), s.alice.PasswordHash, got.PasswordHash)
}

func (s *RepositoryTestSuite) TestGetUserByLogin() {
	byName, err := s.repo.GetUserByLogin(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.alice.ID, byName.ID)

	byEmail, err := s.repo.GetUserByLogin(s.ctx, "alice@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.alice.ID, byEmail.ID)

	_, err = s.repo.GetUserByLogin(s.ctx, "nobody")
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestUserExistenceChecks() {
	taken, err := s.repo.UsernameExists(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)

	free, err := s.repo.UsernameExists(s.ctx, "carol")
	require.NoError(s.T(), err)
	assert.False(s.T(), free)

	taken, err = s.repo.EmailExists(s.ctx, "bob@example.com")
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)
}

func (s *RepositoryTestSuite) TestUpdateUser() {
	err := s.repo.UpdateUser(s.ctx, s.alice.ID, "Alice Cooper", "")
	require.NoError(s.T(), err)

	got, err := s.repo.GetUserByID(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Alice Cooper", got.FullName)
	assert.Equal(s.T(), "alice@example.com", got.Email, "email must be untouched")

	assert.ErrorIs(s.T(), s.repo.UpdateUser(s.ctx, s.alice.ID, "", ""), core.ErrEmptyPatch)
	assert.ErrorIs(s.T(), s.repo.UpdateUser(s.ctx, 99999, "Ghost", ""), core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestUpdatePassword() {
	require.NoError(s.T(), s.repo.UpdatePassword(s.ctx, s.alice.ID, "hash:new"))

	got, err := s.repo.GetUserByID(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "hash:new", got.PasswordHash)

	assert.ErrorIs(s.T(), s.repo.UpdatePassword(s.ctx, 99999, "x"), core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestSessionLifecycle() {
	expires := time.Now().Add(time.Hour)
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "tok-1", s.alice.ID, expires))

	sess, err := s.repo.GetSession(s.ctx, "tok-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.alice.ID, sess.User.ID)
	assert.Equal(s.T(), "alice", sess.User.Username)
	assert.WithinDuration(s.T(), expires, sess.ExpiresAt, 2*time.Second)

	_, err = s.repo.GetSession(s.ctx, "unknown")
	assert.ErrorIs(s.T(), err, core.ErrNotFound)

	require.NoError(s.T(), s.repo.DeleteSession(s.ctx, "tok-1"))
	_, err = s.repo.GetSession(s.ctx, "tok-1")
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestExpiredSessionIsInvisible() {
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "stale", s.alice.ID, time.Now().Add(-time.Minute)))

	_, err := s.repo.GetSession(s.ctx, "stale")
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *RepositoryTestSuite) TestRenewSession() {
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "tok-2", s.alice.ID, time.Now().Add(time.Minute)))

	renewed := time.Now().Add(2 * time.Hour)
	require.NoError(s.T(), s.repo.RenewSession(s.ctx, "tok-2", renewed))

	sess, err := s.repo.GetSession(s.ctx, "tok-2")
	require.NoError(s.T(), err)
	assert.WithinDuration(s.T(), renewed, sess.ExpiresAt, 2*time.Second)
}

func (s *RepositoryTestSuite) TestCleanExpiredSessions() {
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "live", s.alice.ID, time.Now().Add(time.Hour)))
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "dead", s.bob.ID, time.Now().Add(-time.Hour)))

	require.NoError(s.T(), s.repo.CleanExpiredSessions(s.ctx))

	_, err := s.repo.GetSession(s.ctx, "live")
	assert.NoError(s.T(), err)

	var count int64
	err = s.repo.db.QueryRowContext(s.ctx, "SELECT COUNT(*) FROM sessions").Scan(&count)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count, "expired row must be gone")
}

func (s *RepositoryTestSuite) TestPing() {
	assert.NoError(s.T(), s.repo.Ping())
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
