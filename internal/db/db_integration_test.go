package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when it is unset or unreachable.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(db.Close)
	return db
}

func createTestUser(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id, err := db.CreateUser(ctx, "Test User", "test-"+uuid.NewString()+"@example.com", "hash")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DeleteUser(context.Background(), id) })
	return id
}

func TestIntegration_Users(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	email := "user-" + uuid.NewString() + "@example.com"
	id, err := db.CreateUser(ctx, "Asha Rao", email, "hash-1")
	require.NoError(t, err)
	defer func() { _ = db.DeleteUser(ctx, id) }()

	exists, err := db.CheckEmailExists(ctx, email)
	require.NoError(t, err)
	assert.True(t, exists)

	u, err := db.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "hash-1", u.PasswordHash)

	require.NoError(t, db.UpdatePassword(ctx, id, "hash-2"))
	u, err = db.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hash-2", u.PasswordHash)

	_, err = db.CreateUser(ctx, "Duplicate", email, "hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	missing, err := db.GetUserByEmail(ctx, "missing-"+uuid.NewString()+"@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, db.UpdatePassword(ctx, uuid.New(), "x"), ErrNotFound)
}

func TestIntegration_Resumes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	first, err := db.SaveResume(ctx, owner, "First", "classic", []byte(`{"fullName":"Asha"}`))
	require.NoError(t, err)
	second, err := db.SaveResume(ctx, owner, "Second", "modern", []byte(`{"skills":"Go, SQL"}`))
	require.NoError(t, err)

	list, err := db.ListResumes(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	got, err := db.GetResume(ctx, first.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"fullName":"Asha"}`, string(got.Data))

	hidden, err := db.GetResume(ctx, first.ID, other)
	require.NoError(t, err)
	assert.Nil(t, hidden, "other users cannot read the resume")

	updated, err := db.UpdateResume(ctx, first.ID, owner, "Renamed", "minimal", []byte(`{"fullName":"A. Rao"}`))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "minimal", updated.TemplateID)

	_, err = db.UpdateResume(ctx, first.ID, other, "x", "classic", []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, db.DeleteResume(ctx, first.ID, other), ErrNotFound)
	require.NoError(t, db.DeleteResume(ctx, first.ID, owner))
	assert.ErrorIs(t, db.DeleteResume(ctx, first.ID, owner), ErrNotFound)
}

func TestIntegration_Drafts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	key := "draft-" + uuid.NewString()

	missing, err := db.LoadDraft(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, db.SaveDraft(ctx, key, []byte(`{"fullName":"One"}`)))
	require.NoError(t, db.SaveDraft(ctx, key, []byte(`{"fullName":"Two"}`)))

	d, err := db.LoadDraft(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.JSONEq(t, `{"fullName":"Two"}`, string(d.Data))
}
