package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/madhava-poojari/swimschool-api/internal/config"
)

// GoogleVerifier exchanges a Google OAuth authorization code and returns the verified email.
type GoogleVerifier struct {
	oauth    *oauth2.Config
	clientID string
}

func NewGoogleVerifier(cfg *config.Config) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: cfg.GoogleClientID,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

func (g *GoogleVerifier) VerifyCode(ctx context.Context, code string) (string, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("id_token not present in token response")
	}
	// audience must be our client id
	payload, err := idtoken.Validate(ctx, rawIDToken, g.clientID)
	if err != nil {
		return "", fmt.Errorf("validate id token: %w", err)
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return "", errors.New("email not verified by google")
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", errors.New("email not present in token")
	}
	return email, nil
}
