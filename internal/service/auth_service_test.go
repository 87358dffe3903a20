package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

func (m *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepo) FindByID(_ context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) FindByIdentifier(_ context.Context, identifier string) (models.User, error) {
	lowered := strings.ToLower(identifier)
	for _, user := range m.users {
		if user.NIS != "" && user.NIS == identifier {
			return user, nil
		}
		if user.Email != "" && strings.ToLower(user.Email) == lowered {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) List(_ context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	results := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		results = append(results, user)
	}
	return results, int64(len(results)), nil
}

func (m *memoryUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	user, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	m.users[id] = user
	return nil
}

func (m *memoryUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var total int64
	for _, user := range m.users {
		if user.Role == role {
			total++
		}
	}
	return total, nil
}

func (m *memoryUserRepo) CountByClass(_ context.Context, classID uint) (int64, error) {
	var total int64
	for _, user := range m.users {
		if user.ClassID != nil && *user.ClassID == classID {
			total++
		}
	}
	return total, nil
}

func seedUser(t *testing.T, repo *memoryUserRepo, role, nis, email, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Role:         role,
		NIS:          nis,
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, repo.Create(context.Background(), &user))

	return user
}

func newAuthService(repo repository.UserRepository) AuthService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAuthService(repo, validate, "test-secret", time.Hour, zerolog.New(io.Discard))
}

func TestLoginWithNIS(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, models.RoleStudent, "12345", "", "rahasia1")
	svc := newAuthService(repo)

	result, err := svc.Login(context.Background(), dto.LoginRequest{Identifier: "12345", Password: "rahasia1"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, models.RoleStudent, result.User.Role)

	parsed, err := jwt.Parse(result.Token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleStudent, claims["role"])
}

func TestLoginWithEmail(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, models.RoleTeacher, "", "guru@sekolah.sch.id", "rahasia1")
	svc := newAuthService(repo)

	result, err := svc.Login(context.Background(), dto.LoginRequest{Identifier: "guru@sekolah.sch.id", Password: "rahasia1"})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, result.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, models.RoleStudent, "12345", "", "rahasia1")
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Identifier: "12345", Password: "salah123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc := newAuthService(newMemoryUserRepo())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Identifier: "99999", Password: "rahasia1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterStudentRequiresNIS(t *testing.T) {
	svc := newAuthService(newMemoryUserRepo())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Budi",
		Role:     models.RoleStudent,
		Password: "rahasia1",
	})
	require.ErrorIs(t, err, ErrIdentifierRequired)
}

func TestRegisterRejectsDuplicateIdentifier(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(t, repo, models.RoleStudent, "12345", "", "rahasia1")
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Budi",
		Role:     models.RoleStudent,
		NIS:      "12345",
		Password: "rahasia1",
	})
	require.ErrorIs(t, err, ErrIdentifierTaken)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newMemoryUserRepo()
	user := seedUser(t, repo, models.RoleStudent, "12345", "", "rahasia1")
	svc := newAuthService(repo)

	err := svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "salah123",
		NewPassword:     "baru-rahasia",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "rahasia1",
		NewPassword:     "baru-rahasia",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Identifier: "12345", Password: "baru-rahasia"})
	require.NoError(t, err)
}
