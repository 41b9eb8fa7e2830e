package sso

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"calidad-be/auth"
	"calidad-be/user"
	"calidad-be/util"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

type SSOService struct {
	userRepo *user.UserRepository
	redis    *redis.Client
}

func NewSSOService(userRepo *user.UserRepository, redisClient *redis.Client) *SSOService {
	return &SSOService{
		userRepo: userRepo,
		redis:    redisClient,
	}
}

func (s *SSOService) GetLoginURL(state string) string {
	oauthConfig := GetMicrosoftOAuthConfig()
	return oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

func (s *SSOService) HandleCallback(ctx context.Context, code string) (*user.LoginResponse, error) {
	oauthConfig := GetMicrosoftOAuthConfig()

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	client := oauthConfig.Client(ctx, token)
	resp, err := client.Get("https://graph.microsoft.com/v1.0/me")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var msUser MicrosoftUser
	if err := json.Unmarshal(body, &msUser); err != nil {
		return nil, err
	}

	email := msUser.Email
	if email == "" {
		email = msUser.UserPrincipalName
	}
	if email == "" {
		return nil, errors.New("email not provided by identity provider")
	}

	dbUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		// First SSO login provisions a local account with an unusable
		// random password.
		hashedPassword, hashErr := util.HashPassword(util.RandString(32))
		if hashErr != nil {
			return nil, hashErr
		}

		newUser := &user.User{
			Name:        msUser.DisplayName,
			Email:       email,
			Password:    hashedPassword,
			AccountType: "microsoft",
		}

		dbUser, err = s.userRepo.CreateUser(newUser)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	companyID := ""
	if dbUser.CompanyID != nil {
		companyID = *dbUser.CompanyID
	}

	accessToken, err := auth.GenerateAccessToken(dbUser.ID, dbUser.Name, dbUser.Email, dbUser.AccountType, companyID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.GenerateRefreshToken(dbUser.ID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("refresh_token:%d", dbUser.ID)
	if err := s.redis.Set(ctx, key, refreshToken, 7*24*time.Hour).Err(); err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	dbUser.Password = ""
	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dbUser,
	}, nil
}
