package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/rbac"
	"go-hrms/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		clock:     clk,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = rbac.RoleEmployee
	}
	switch role {
	case rbac.RoleAdmin, rbac.RoleManager, rbac.RoleEmployee:
	default:
		return AuthResponse{}, autherrors.ErrInvalidRole
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		id, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		if _, err := s.employees.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
			}
			return AuthResponse{}, err
		}
		employeeID = &id
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Name:       req.Name,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register persist failed", zap.String("email", user.Email), zap.Error(err))
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)

	return mapUserToResponse(user), nil
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return tokens, mapUserToResponse(user), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	return tokens, mapUserToResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	return mapUserToResponse(user), nil
}

func (s *service) issueTokens(user *User) (TokenPair, error) {
	access, err := s.generateToken(user, AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.generateToken(user, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(user *User, ttl time.Duration) (string, error) {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}

	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": employeeID,
		"role":        user.Role,
		"exp":         s.clock.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func mapUserToResponse(user *User) AuthResponse {
	resp := AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.EmployeeID != nil {
		resp.EmployeeID = user.EmployeeID.String()
	}
	return resp
}
