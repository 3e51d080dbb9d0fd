package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Verifier reads the portal token from the Authorization header or the
// session cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, tokenFromSessionCookie)
}

func tokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(jwt.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionRequired resolves the verified token into a live portal session and
// stores it on the request context.
func SessionRequired(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sessionID, err := jwtService.SessionIDFromToken(token)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sess, err := authService.Authenticate(r.Context(), sessionID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionOptional attaches the session when the token resolves to one and
// lets the request through either way.
func SessionOptional(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err == nil && token != nil {
				if sessionID, err := jwtService.SessionIDFromToken(token); err == nil {
					if sess, err := authService.Authenticate(r.Context(), sessionID); err == nil {
						r = r.WithContext(session.WithSession(r.Context(), sess))
					}
				}
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
