package services

import (
	"context"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/repositories"
	"github.com/Shamshod-Xatamov/TravelScout-V2/utils"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour

	minPasswordLength = 8
)

type UserService struct {
	UserRepo    *repositories.UserRepository
	ProfileRepo *repositories.ProfileRepository
	Tokens      *utils.Manager
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.User{}, models.ErrInvalidCredentials
	}
	if len(req.Password) < minPasswordLength {
		return models.User{}, models.ErrWeakPassword
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing.ID != 0 {
		return models.User{}, models.ErrDuplicateEmail
	}
	existing, err = s.UserRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return models.User{}, err
	}
	if existing.ID != 0 {
		return models.User{}, models.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	})
	if err != nil {
		return models.User{}, err
	}

	if err := s.ProfileRepo.EnsureProfile(ctx, user.ID); err != nil {
		return models.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.Tokens{}, err
	}
	if user.ID == 0 {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// RefreshTokens exchanges a stored refresh token for a new token pair.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (models.Tokens, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.Tokens{}, err
	}
	if session.UserID == 0 || time.Now().After(session.ExpiresAt) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, session.UserID)
}

func (s *UserService) issueTokens(ctx context.Context, userID int) (models.Tokens, error) {
	claims := models.Claims{
		UserID: uint(userID),
		Role:   "user",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
		},
	}
	accessToken, err := s.Tokens.NewAccessToken(claims)
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	err = s.UserRepo.SetSession(ctx, userID, models.Session{
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

// GetProfile returns the account page payload, creating the profile row on
// first read if signup predates the profiles table.
func (s *UserService) GetProfile(ctx context.Context, userID int) (models.ProfileResponse, error) {
	if err := s.ProfileRepo.EnsureProfile(ctx, userID); err != nil {
		return models.ProfileResponse{}, err
	}
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	return models.ProfileResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		ProfilePicture: profile.ProfilePicture,
		JoinedAt:       user.CreatedAt,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest) (models.ProfileResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" {
		return models.ProfileResponse{}, models.ErrInvalidCredentials
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	if existing.ID != 0 && existing.ID != userID {
		return models.ProfileResponse{}, models.ErrDuplicateEmail
	}
	existing, err = s.UserRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	if existing.ID != 0 && existing.ID != userID {
		return models.ProfileResponse{}, models.ErrDuplicateUsername
	}

	if err := s.UserRepo.UpdateUser(ctx, models.User{
		ID:       userID,
		Username: req.Username,
		Email:    req.Email,
	}); err != nil {
		return models.ProfileResponse{}, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *UserService) UpdateProfilePicture(ctx context.Context, userID int, pictureURL string) error {
	if err := s.ProfileRepo.EnsureProfile(ctx, userID); err != nil {
		return err
	}
	return s.ProfileRepo.UpdatePicture(ctx, userID, pictureURL)
}

// UpdatePassword verifies the old password before storing the new hash. All
// sessions stay valid; only the credential changes.
func (s *UserService) UpdatePassword(ctx context.Context, userID int, req models.UpdatePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return models.ErrWeakPassword
	}

	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return models.ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, userID, string(hashed))
}
