package handlers

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/aakash391999/ExamSphare-sub000/internal/security"
	"github.com/aakash391999/ExamSphare-sub000/internal/service"
)

const oauthStateCookie = "oauth_state"

// OAuthHandler implements Google sign-in
type OAuthHandler struct {
	authService *service.AuthService
	config      *oauth2.Config
	appBaseURL  string
}

// NewOAuthHandler creates a new OAuth handler. Returns a disabled handler
// when no client id is configured.
func NewOAuthHandler(authService *service.AuthService, clientID, clientSecret, redirectURL, appBaseURL string) *OAuthHandler {
	h := &OAuthHandler{
		authService: authService,
		appBaseURL:  appBaseURL,
	}
	if clientID != "" {
		h.config = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		}
	}
	return h
}

// Start handles GET /api/auth/google
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	if h.config == nil {
		respondError(w, http.StatusNotFound, "Google sign-in is not configured", "", nil)
		return
	}

	state := security.GenerateSessionID()
	http.SetCookie(w, security.CreateSessionCookie(r, oauthStateCookie, state, time.Now().Add(10*time.Minute)))

	http.Redirect(w, r, h.config.AuthCodeURL(state), http.StatusSeeOther)
}

// Callback handles GET /api/auth/google/callback
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if h.config == nil {
		respondError(w, http.StatusNotFound, "Google sign-in is not configured", "", nil)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		respondError(w, http.StatusBadRequest, "invalid OAuth state", "", err)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, oauthStateCookie))

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code", "", nil)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusBadGateway, "sign-in failed", "Failed to exchange OAuth code", err)
		return
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		respondError(w, http.StatusBadGateway, "sign-in failed", "OAuth token response has no id_token", nil)
		return
	}

	claims, err := parseGoogleIDToken(r.Context(), rawIDToken, h.config.ClientID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "sign-in failed", "Failed to verify Google id token", err)
		return
	}

	_, sessionID, err := h.authService.LoginOAuth(claims.Email, claims.Name, claims.Subject)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "sign-in failed", "Failed to log in OAuth user", err)
		return
	}

	expires := time.Now().Add(h.authService.SessionDuration())
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, sessionID, expires))
	http.Redirect(w, r, h.appBaseURL, http.StatusSeeOther)
}

type googleTokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

type googleParsedClaims struct {
	Subject string
	Email   string
	Name    string
}

func parseGoogleIDToken(ctx context.Context, idToken, clientID string) (googleParsedClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	claims := &googleTokenClaims{}

	parsedToken, err := parser.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing key id")
		}
		return fetchGooglePublicKey(ctx, kid)
	})
	if err != nil || !parsedToken.Valid {
		return googleParsedClaims{}, errors.New("invalid Google token")
	}

	if claims.Issuer != "https://accounts.google.com" && claims.Issuer != "accounts.google.com" {
		return googleParsedClaims{}, errors.New("invalid Google issuer")
	}
	if !audienceContains(claims.Audience, clientID) {
		return googleParsedClaims{}, errors.New("invalid Google audience")
	}
	if claims.Email == "" || !claims.EmailVerified {
		return googleParsedClaims{}, errors.New("Google email not verified")
	}

	return googleParsedClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

func audienceContains(audience jwt.ClaimStrings, value string) bool {
	for _, entry := range audience {
		if entry == value {
			return true
		}
	}
	return false
}

type googleJWK struct {
	Keys []googleJWKKey `json:"keys"`
}

type googleJWKKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func fetchGooglePublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v3/certs", nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google keys: %w", err)
	}
	defer resp.Body.Close()

	var jwks googleJWK
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode Google keys: %w", err)
	}

	for _, key := range jwks.Keys {
		if key.Kid != kid || key.Kty != "RSA" {
			continue
		}

		nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, fmt.Errorf("invalid key modulus: %w", err)
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, fmt.Errorf("invalid key exponent: %w", err)
		}

		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}, nil
	}

	return nil, fmt.Errorf("no Google key with id %s", kid)
}
