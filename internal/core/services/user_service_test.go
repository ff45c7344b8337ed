package services

import (
	"context"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		Name:            "Alice Reader",
		Email:           "alice@example.com",
		Password:        "secret-password",
		ConfirmPassword: "secret-password",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleMember, user.Role)

	// Password is stored as a hash, never plaintext
	assert.NotEqual(t, "secret-password", user.Password)
	assert.True(t, password.Verify("secret-password", user.Password))
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	testCases := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			"missing name",
			RegisterInput{Email: "a@example.com", Password: "secret-password", ConfirmPassword: "secret-password"},
			domain.ErrInvalidInput,
		},
		{
			"missing email",
			RegisterInput{Name: "Alice", Password: "secret-password", ConfirmPassword: "secret-password"},
			domain.ErrInvalidInput,
		},
		{
			"malformed email",
			RegisterInput{Name: "Alice", Email: "not-an-email", Password: "secret-password", ConfirmPassword: "secret-password"},
			domain.ErrInvalidEmail,
		},
		{
			"password mismatch",
			RegisterInput{Name: "Alice", Email: "a@example.com", Password: "secret-password", ConfirmPassword: "different-password"},
			domain.ErrPasswordMismatch,
		},
		{
			"short password",
			RegisterInput{Name: "Alice", Email: "a@example.com", Password: "short", ConfirmPassword: "short"},
			domain.ErrWeakPassword,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	input := &RegisterInput{
		Name:            "Alice Reader",
		Email:           "alice@example.com",
		Password:        "secret-password",
		ConfirmPassword: "secret-password",
	}

	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	input.Name = "Another Alice"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count, "second attempt must not create a row")
}

func TestLoginGenericFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	createUser(t, db, "Alice Reader", "alice@example.com", models.RoleMember)

	// Wrong password and unknown email must be indistinguishable
	_, wrongPassword := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	_, unknownEmail := svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "secret-password"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLoginSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := createUser(t, db, "Alice Reader", "alice@example.com", models.RoleMember)

	result, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.UserID)
	assert.Equal(t, user.FullName, result.User.FullName)
	assert.Equal(t, models.RoleMember, result.User.Role)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	createUser(t, db, "Alice Reader", "alice@example.com", models.RoleMember)

	login, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is revoked and cannot be replayed
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	createUser(t, db, "Alice Reader", "alice@example.com", models.RoleMember)

	login, err := svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// Logging out twice, or with no token, is harmless
	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	createUser(t, db, "Alice Reader", "alice@example.com", models.RoleMember)
	createUser(t, db, "The Librarian", "admin@example.com", models.RoleAdmin)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice Reader", users[0].FullName)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
}

func TestListBorrowings(t *testing.T) {
	db := newTestDB(t)
	userSvc := newUserService(db)
	bookSvc := newBookService(db)
	ctx := context.Background()

	user := createUser(t, db, "Alice Reader", "alice@example.com", models.RoleMember)
	book := createBook(t, db, "Dune", "Frank Herbert", 2, 2)

	borrowing, err := bookSvc.Borrow(ctx, user.ID, book.ID)
	require.NoError(t, err)

	details, err := userSvc.ListBorrowings(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, user.ID, details[0].UserID)
	assert.Equal(t, "Alice Reader", details[0].UserName)
	assert.Equal(t, book.ID, details[0].BookID)
	assert.Equal(t, "Dune", details[0].Title)
	assert.WithinDuration(t, borrowing.BorrowDate, details[0].BorrowDate, time.Second)
}
