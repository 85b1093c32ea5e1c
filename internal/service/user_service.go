package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/Taraansh/e-commerce/internal/platform/auth"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/repository"
	"github.com/thanhpk/randstr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	otpValidity     = 10 * time.Minute
	tempPasswordLen = 10
	mailSendTimeout = 30 * time.Second
)

// TokenSigner issues session tokens. Satisfied by auth.TokenManager.
type TokenSigner interface {
	Sign(userID string) (string, error)
}

var _ TokenSigner = (*auth.TokenManager)(nil)

type UserServiceConfig struct {
	AdminSecretToken string
	LoginLink        string
	TokenTTL         time.Duration
}

type UserService struct {
	users  repository.UserRepository
	tokens gateway.TokenCache
	mailer gateway.Mailer
	signer TokenSigner
	cfg    UserServiceConfig
	log    logger.Logger
}

func NewUserService(
	users repository.UserRepository,
	tokens gateway.TokenCache,
	mailer gateway.Mailer,
	signer TokenSigner,
	cfg UserServiceConfig,
	log logger.Logger,
) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		signer: signer,
		cfg:    cfg,
		log:    log,
	}
}

type RegisterInput struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Type        entity.UserType `json:"type"`
	SecretToken string          `json:"secretToken"`
}

type RegisterResult struct {
	Email string `json:"email"`
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if input.Type == entity.UserTypeAdmin && input.SecretToken != s.cfg.AdminSecretToken {
		return nil, ErrAdminCreateForbidden
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Type:     input.Type,
	}
	if user.Type == "" {
		user.Type = entity.UserTypeCustomer
	}

	// Non-customer accounts skip the OTP flow entirely.
	if user.Type != entity.UserTypeCustomer {
		user.IsVerified = true
	} else {
		expiry := time.Now().UTC().Add(otpValidity)
		user.Otp = generateOtp()
		user.OtpExpiry = &expiry
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if created.Type != entity.UserTypeAdmin {
		s.sendAsync("verification", func(mailCtx context.Context) error {
			return s.mailer.SendVerifyEmail(mailCtx, created.Email, created.Name, created.Otp)
		})
	}

	s.log.Infof("user %s registered with type %s", created.Email, created.Type)
	return &RegisterResult{Email: created.Email}, nil
}

type LoginResult struct {
	User  entity.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Login deliberately reports the same error for an unknown email and a wrong
// password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}

	if !auth.ComparePassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := s.tokens.CacheToken(ctx, user.ID.Hex(), token, s.cfg.TokenTTL); err != nil {
		s.log.Warnf("failed to cache session token for user %s: %v", user.ID.Hex(), err)
	}

	return &LoginResult{User: user.Public(), Token: token}, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.tokens.InvalidateToken(ctx, userID)
}

func (s *UserService) VerifyEmail(ctx context.Context, otp, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Otp != otp {
		return ErrInvalidOtp
	}
	if user.OtpExpiry == nil || user.OtpExpiry.Before(time.Now()) {
		return ErrOtpExpired
	}
	return s.users.MarkVerified(ctx, email)
}

func (s *UserService) ResendOtp(ctx context.Context, email string) (*RegisterResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}

	otp := generateOtp()
	expiry := time.Now().UTC().Add(otpValidity)
	if err := s.users.SetOtp(ctx, email, otp, expiry); err != nil {
		return nil, fmt.Errorf("failed to store new otp: %w", err)
	}

	s.sendAsync("verification", func(mailCtx context.Context) error {
		return s.mailer.SendVerifyEmail(mailCtx, user.Email, user.Name, otp)
	})
	return &RegisterResult{Email: user.Email}, nil
}

type ForgotPasswordResult struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPassword sets a random temporary password and mails the plaintext to
// the user. This is a reset-then-email flow, not a reset-link flow.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	tempPassword := randstr.String(tempPasswordLen)
	hashed, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return nil, fmt.Errorf("failed to persist temporary password: %w", err)
	}

	s.sendAsync("password reset", func(mailCtx context.Context) error {
		return s.mailer.SendPasswordReset(mailCtx, user.Email, tempPassword, s.cfg.LoginLink)
	})
	return &ForgotPasswordResult{Email: user.Email, Password: tempPassword}, nil
}

type UpdateProfileInput struct {
	Name        string `json:"name"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*entity.PublicUser, error) {
	if input.Name == "" && input.NewPassword == "" {
		return nil, ErrNothingToUpdate
	}

	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.NewPassword != "" {
		if !auth.ComparePassword(input.OldPassword, user.Password) {
			return nil, ErrInvalidCurrentPassword
		}
		hashed, err := auth.HashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash new password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}
	if input.Name != "" {
		if err := s.users.UpdateName(ctx, userID, input.Name); err != nil {
			return nil, fmt.Errorf("failed to update name: %w", err)
		}
		user.Name = input.Name
	}

	public := user.Public()
	return &public, nil
}

func (s *UserService) ListUsers(ctx context.Context, userType entity.UserType) ([]entity.User, error) {
	return s.users.List(ctx, userType)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.users.GetByID(ctx, userID)
}

// sendAsync hands a mail off without blocking the request. Failures are
// logged, never surfaced to the caller.
func (s *UserService) sendAsync(what string, send func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			s.log.Warnf("failed to send %s email: %v", what, err)
		}
	}()
}

func generateOtp() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}
