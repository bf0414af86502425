package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/jwt"
)

// Config parámetros de emisión de tokens.
type Config struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase autenticación de la consola admin: valida credenciales y emite JWT.
type UseCase struct {
	users repository.UserRepository
	cfg   Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, cfg Config) *UseCase {
	return &UseCase{users: users, cfg: cfg}
}

// Login valida email/contraseña y devuelve un token firmado. Credenciales
// incorrectas y usuario inexistente responden el mismo error.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: user.Role}, nil
}
