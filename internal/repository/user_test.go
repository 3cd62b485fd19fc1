package repository_test

import (
	"testing"

	"newshub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	db := setupDB(t)

	u, err := repository.RegisterUser(db, "sarah", "sarah@student.edu", "student123", "student123")
	require.NoError(t, err)
	assert.Equal(t, "sarah", u.Username)
	assert.False(t, u.IsAdmin)

	// Пароль хранится только в виде хеша
	var stored string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE id = ?", u.ID).Scan(&stored))
	assert.NotEqual(t, "student123", stored)
}

func TestRegisterUser_Validation(t *testing.T) {
	db := setupDB(t)

	_, err := repository.RegisterUser(db, "", "a@b.cc", "123456", "123456")
	assert.True(t, repository.IsValidation(err))

	_, err = repository.RegisterUser(db, "bob", "bob@student.edu", "123456", "654321")
	assert.True(t, repository.IsValidation(err), "несовпадающие пароли отклоняются")

	assert.Equal(t, 0, countRows(t, db, "users"))
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	createUser(t, db, "sarah")

	_, err := repository.RegisterUser(db, "sarah", "other@student.edu", "123456", "123456")
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
	assert.Equal(t, 1, countRows(t, db, "users"), "новая строка не создана")
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	createUser(t, db, "sarah")

	_, err := repository.RegisterUser(db, "sarah2", "sarah@student.edu", "123456", "123456")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Equal(t, 1, countRows(t, db, "users"))
}

func TestVerifyUser(t *testing.T) {
	db := setupDB(t)
	createUser(t, db, "sarah")

	u, err := repository.VerifyUser(db, "sarah", "student123")
	require.NoError(t, err)
	assert.Equal(t, "sarah", u.Username)

	// Несуществующий пользователь и неверный пароль неразличимы снаружи
	_, err = repository.VerifyUser(db, "sarah", "wrongpass")
	assert.ErrorIs(t, err, repository.ErrInvalidCredentials)
	_, err = repository.VerifyUser(db, "nobody", "student123")
	assert.ErrorIs(t, err, repository.ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, repository.EnsureAdmin(db, "admin123"))
	require.NoError(t, repository.EnsureAdmin(db, "admin123"), "повторный вызов ничего не ломает")
	assert.Equal(t, 1, countRows(t, db, "users"))

	u, err := repository.VerifyUser(db, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestDeleteUser_Cascade(t *testing.T) {
	db := setupDB(t)
	admin := createAdmin(t, db, "admin123")
	sarah := createUser(t, db, "sarah")
	bob := createUser(t, db, "bob")

	sarahPost := createPost(t, db, sarah, "Пост Сары")
	bobPost := createPost(t, db, bob, "Пост Боба")

	// Чужие комментарии и репосты на постах Сары тоже должны исчезнуть
	_, err := repository.AddComment(db, bob, sarahPost.ID, "Комментарий Боба у Сары")
	require.NoError(t, err)
	_, err = repository.AddComment(db, sarah, bobPost.ID, "Комментарий Сары у Боба")
	require.NoError(t, err)
	require.NoError(t, repository.AddShare(db, bob, sarahPost.ID))
	require.NoError(t, repository.AddShare(db, sarah, bobPost.ID))

	require.NoError(t, repository.DeleteUser(db, admin, sarah.ID))

	_, err = repository.GetUser(db, sarah.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repository.GetPost(db, sarahPost.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, 0, countRows(t, db, "comments"), "комментарии Сары и комментарии на её постах удалены")
	assert.Equal(t, 0, countRows(t, db, "shares"), "репосты Сары и репосты её постов удалены")

	// Пост Боба не пострадал
	_, err = repository.GetPost(db, bobPost.ID)
	assert.NoError(t, err)
}

func TestDeleteUser_Forbidden(t *testing.T) {
	db := setupDB(t)
	sarah := createUser(t, db, "sarah")
	bob := createUser(t, db, "bob")

	err := repository.DeleteUser(db, bob, sarah.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Equal(t, 2, countRows(t, db, "users"))
}

func TestDeleteUser_Self(t *testing.T) {
	db := setupDB(t)
	admin := createAdmin(t, db, "admin123")

	err := repository.DeleteUser(db, admin, admin.ID)
	assert.ErrorIs(t, err, repository.ErrSelfDeletion)
	assert.Equal(t, 1, countRows(t, db, "users"))
}

func TestCountStats(t *testing.T) {
	db := setupDB(t)
	sarah := createUser(t, db, "sarah")
	post := createPost(t, db, sarah, "Пост")
	_, err := repository.AddComment(db, sarah, post.ID, "Комментарий")
	require.NoError(t, err)
	require.NoError(t, repository.AddShare(db, sarah, post.ID))

	stats, err := repository.CountStats(db)
	require.NoError(t, err)
	assert.Equal(t, repository.Stats{TotalUsers: 1, TotalPosts: 1, TotalComments: 1, TotalShares: 1}, stats)
}
