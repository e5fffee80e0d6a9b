package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUsername ctxKey = "username"

// Cookie names. The session cookie carries a signed identity token;
// the flash cookie carries a one-shot notice drained by the next page
// request.
const (
	SessionCookie = "session"
	FlashCookie   = "flash"
)

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// issueSession signs an identity token for the cookie. No expiry
// claim: the gate is binary and logout is the only way out.
func (h *Handler) issueSession(username string) (string, error) {
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) parseSession(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(h.secret), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Username == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Username, nil
}

// sessionMiddleware gates protected routes. Anonymous requests are
// redirected to the login page untouched; authenticated ones continue
// with the username in the request context.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(SessionCookie)
		if err != nil || ck.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		username, err := h.parseSession(ck.Value)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := contextWithUsername(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxUsername, username)
}

// usernameFromContext returns the authenticated identity, empty when
// the request never passed the gate.
func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(ctxUsername).(string)
	return username
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores a one-shot notice for the next page request.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash drains the pending notice, clearing the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	ck, err := r.Cookie(FlashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return message
}
