package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/ports/auth"
	portmedia "petplus/internal/ports/media"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
	bcryptCost     = 10
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrProfileFields      = errors.New("name and phone are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
)

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	photos *media.Relay
	now    func() time.Time
}

func NewService(repo Repository, issuer auth.TokenIssuer, photos *media.Relay) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		photos: photos,
		now:    time.Now,
	}
}

// NormalizeEmail es la forma en que se guarda y se busca un email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Photo           *media.File // opcional
}

// Register valida todo antes de tocar el store; la foto se sube recién cuando el email está libre.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" || email == "" || phone == "" || in.Password == "" || in.ConfirmPassword == "" {
		return User{}, ErrMissingFields
	}
	if err := checkPassword(in.Password, in.ConfirmPassword); err != nil {
		return User{}, err
	}
	if in.Photo != nil {
		if err := s.photos.Validate(in.Photo); err != nil {
			return User{}, err
		}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if in.Photo != nil {
		loc, err := s.photos.Store(ctx, portmedia.KindUser, in.Photo)
		if err != nil {
			return User{}, err
		}
		u.PhotoURL = &loc
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type LoginResult struct {
	Token  string
	Claims auth.Claims
}

// Login no distingue email desconocido de password incorrecta.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrMissingFields
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	claims := ClaimsOf(u)
	token, err := s.issuer.Issue(claims)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: token, Claims: claims}, nil
}

func ClaimsOf(u User) auth.Claims {
	return auth.Claims{
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.Photo(),
	}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name            string
	Phone           string
	Password        string // vacío = no cambia
	ConfirmPassword string
	Photo           *media.File
	RemovePhoto     bool
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}

	upd := ProfileUpdate{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}
	if upd.Name == "" || upd.Phone == "" {
		return User{}, ErrProfileFields
	}

	if in.Password != "" || in.ConfirmPassword != "" {
		if err := checkPassword(in.Password, in.ConfirmPassword); err != nil {
			return User{}, err
		}
	}
	if in.Photo != nil {
		if err := s.photos.Validate(in.Photo); err != nil {
			return User{}, err
		}
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		upd.PasswordHash = &h
	}

	switch {
	case in.Photo != nil:
		loc, err := s.photos.Store(ctx, portmedia.KindUser, in.Photo)
		if err != nil {
			return User{}, err
		}
		upd.SetPhoto = true
		upd.PhotoURL = &loc
	case in.RemovePhoto:
		upd.SetPhoto = true
	}

	return s.repo.UpdateProfile(ctx, userID, upd)
}

func checkPassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}
