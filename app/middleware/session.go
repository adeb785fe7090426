package appMiddleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/go-geomapper/internal/api"
)

const sessionIssuer = "geomapper"

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	Secret     []byte
	CookieName string
	Audience   string
	TTL        time.Duration
	Secure     bool
}

// Session makes sure every request carries a session id. The id travels in an
// HS256-signed cookie; a missing, forged or expired cookie yields a fresh session.
func Session(cfg SessionConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, err := ReadSessionCookie(r, cfg)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					logger.DebugContext(r.Context(), "Discarding invalid session cookie", slog.Any("error", err))
				}
				sid = uuid.NewString()
				token, err := IssueSessionToken(cfg, sid, time.Now())
				if err != nil {
					logger.ErrorContext(r.Context(), "Failed to sign session token", slog.Any("error", err))
					api.ErrorResponse(w, r, http.StatusInternalServerError, "Could not start a session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
		})
	}
}

// IssueSessionToken signs a session token for sid.
func IssueSessionToken(cfg SessionConfig, sid string, now time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}

// ReadSessionCookie validates the session cookie and returns its session id.
func ReadSessionCookie(r *http.Request, cfg SessionConfig) (string, error) {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return "", err
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return cfg.Secret, nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if !api.VerifyAudience(claims.Audience, cfg.Audience) {
		return "", jwt.ErrTokenInvalidAudience
	}
	if claims.SessionID == "" {
		return "", errors.New("session token has no session id")
	}
	return claims.SessionID, nil
}
