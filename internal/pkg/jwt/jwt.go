package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	// CookieName carries the portal session token for browser clients.
	CookieName = "portal_session"

	tokenType = "session"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

type Service interface {
	GenerateSessionToken(sessionID, userID string, expiresAt time.Time) (string, error)
	ParseSessionToken(tokenString string) (sessionID string, err error)
	SessionIDFromToken(token jwt.Token) (string, error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	ClearSessionCookie() *http.Cookie
}

type JWTService struct {
	tokenAuth    *jwtauth.JWTAuth
	secureCookie bool
}

func NewJWTService(secretKey string, secureCookie bool) Service {
	return &JWTService{
		tokenAuth:    jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		secureCookie: secureCookie,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateSessionToken signs a token that references a server-side session.
// The upstream access token never leaves the server.
func (j *JWTService) GenerateSessionToken(sessionID, userID string, expiresAt time.Time) (string, error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"session_id": sessionID,
		"user_id":    userID,
		"type":       tokenType,
		"exp":        expiresAt.Unix(),
	})
	return tokenString, err
}

func (j *JWTService) ParseSessionToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", ErrInvalidSessionToken
	}
	return j.SessionIDFromToken(token)
}

// SessionIDFromToken checks the token type and returns its session id.
func (j *JWTService) SessionIDFromToken(token jwt.Token) (string, error) {
	if token == nil {
		return "", ErrInvalidSessionToken
	}
	typ, ok := token.Get("type")
	if !ok || typ != tokenType {
		return "", ErrInvalidSessionToken
	}
	raw, ok := token.Get("session_id")
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sessionID, ok := raw.(string)
	if !ok || sessionID == "" {
		return "", ErrInvalidSessionToken
	}
	return sessionID, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
