package services

import (
	"context"
	"errors"
	"strings"

	"github.com/alexandru1c/refeelv2/entity"
	"github.com/alexandru1c/refeelv2/pkg/identity"
	"github.com/alexandru1c/refeelv2/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService เป็น identity provider แบบ local สำหรับ dev/ทดสอบ
// ถ้าใช้ OIDC จริง endpoint register/login จะไม่ถูกเปิด
type AuthService struct {
	userRepo    *repository.UserRepository
	issuer      *identity.HMACVerifier
	signupBonus int64
	log         *zap.Logger
}

func NewAuthService(repo *repository.UserRepository, issuer *identity.HMACVerifier, signupBonus int64, log *zap.Logger) *AuthService {
	return &AuthService{userRepo: repo, issuer: issuer, signupBonus: signupBonus, log: log}
}

// Register สร้าง user ใหม่ ถ้า email ซ้ำจะ error
func (s *AuthService) Register(email, password, displayName string) (*entity.User, error) {
	// trim และ normalize email
	email = strings.ToLower(strings.TrimSpace(email))

	// ตรวจซ้ำ email
	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	// hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		UserUUID:    uuid.NewString(),
		Email:       email,
		Password:    string(hashed),
		DisplayName: strings.TrimSpace(displayName),
		CoinBalance: s.signupBonus,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.Int64("bonus", s.signupBonus))
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	// เทียบรหัสผ่าน
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// ออก token
	token, err := s.issuer.Issue(user.UserUUID, user.Email, user.DisplayName)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

// GetProfile
func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

// UserResolver maps a verified identity onto a users row.
type UserResolver struct {
	Repo *repository.UserRepository
}

func (r *UserResolver) Resolve(ctx context.Context, id *identity.Identity) (uint, error) {
	u, err := r.Repo.FindOrProvision(ctx, id.Subject, id.Email, id.Name)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
