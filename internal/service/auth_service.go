package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

// AuthConfig defines admin token settings. There is no user store;
// mutating endpoints are guarded by a single token issued against the
// deployment admin key.
type AuthConfig struct {
	JWTSecret   string
	AdminKey    string
	TokenExpiry time.Duration
}

// AuthService issues and validates the admin bearer token.
type AuthService struct {
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(validate *validator.Validate, logger *zap.Logger, cfg AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = 12 * time.Hour
	}
	return &AuthService{validator: validate, logger: logger, config: cfg}
}

// Login exchanges the admin key for a signed bearer token.
func (s *AuthService) Login(req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if s.config.AdminKey == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "admin access is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(s.config.AdminKey)) != 1 {
		s.logger.Warn("admin login rejected")
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid admin key")
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   "admin",
		Issuer:    "campus-timetable-api",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &dto.AdminLoginResponse{Token: signed, ExpiresIn: int64(s.config.TokenExpiry.Seconds())}, nil
}

// Validate parses and verifies an admin bearer token.
func (s *AuthService) Validate(raw string) error {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return nil
}
