package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/auth"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(memory.NewUserRepository(), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "phagestock-test",
	})
}

func TestRegisterUser_RolPorDefectoYHash(t *testing.T) {
	uc := newAuth(t)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Name:     "Sabrina",
		Email:    "sabrina@lab.cl",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCommonUser, user.Role)
	assert.Equal(t, "active", user.Status)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dup@lab.cl", Password: "x12345"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "dup@lab.cl", Password: "y12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "x@lab.cl", Password: "x12345", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Marco", Email: "marco@lab.cl", Password: "secreta123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	t.Run("credenciales correctas", func(t *testing.T) {
		resp, err := uc.Login(dto.LoginRequest{Email: "marco@lab.cl", Password: "secreta123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, entity.RoleAdmin, resp.User.Role)
	})

	t.Run("password incorrecta", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "marco@lab.cl", Password: "otra"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "nadie@lab.cl", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
