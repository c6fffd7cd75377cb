package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
	"github.com/zeenatstore/zeenat-store/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuración de firma del token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase cubre login, cambio de contraseña y creación de cuentas semilla.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase crea el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login valida usuario/contraseña y firma un token de sesión.
// Usuario desconocido → ErrUserNotFound, contraseña incorrecta → ErrUnauthorized, cuenta inactiva → ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Roles:     user.Roles,
		Superuser: user.IsSuperuser,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{Token: token, User: user}, nil
}

// ChangePassword verifica la contraseña actual y guarda la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	v := domain.NewValidationError()
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		v.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
	}
	if utf8.RuneCountInString(in.NewPassword1) < minPasswordLen {
		v.Add("new_password1", "This password is too short. It must contain at least 8 characters.")
	}
	if in.NewPassword1 != in.NewPassword2 {
		v.Add("new_password2", "The two password fields didn't match.")
	}
	if err := v.OrNil(); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

// EnsureUser crea la cuenta salvo que el username ya exista. created indica si se
// escribió una fila nueva.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, in dto.SeedUser) (user *entity.User, created bool, err error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, false, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	roles := make([]string, 0, len(in.Roles))
	for _, r := range access.ParseRoles(in.Roles) {
		roles = append(roles, string(r))
	}
	now := time.Now()
	user = &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Roles:        roles,
		IsSuperuser:  in.Superuser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			existing, gerr := uc.userRepo.GetByUsername(ctx, username)
			return existing, false, gerr
		}
		return nil, false, err
	}
	return user, true, nil
}
