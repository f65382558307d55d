package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/policy"
)

type contextKey string

const actorKey contextKey = "actor"

const (
	CookieName    = "actor"
	cookieExpires = 365 * 24 * time.Hour
)

var errInvalidCookie = errors.New("invalid cookie signature")

// AuthMiddleware identifies the acting user by a signed cookie holding
// "<id>.<role>.<signature>". Visitors without a cookie get a fresh id and
// the default role.
type AuthMiddleware struct {
	secretKey   []byte
	defaultRole string
	logger      *zap.Logger
}

func NewAuthMiddleware(secret, defaultRole string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secretKey:   []byte(secret),
		defaultRole: defaultRole,
		logger:      logger,
	}
}

func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, fresh, err := a.actorFromRequest(r)
		if err != nil {
			a.logger.Warn("Rejected actor cookie", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if fresh {
			a.SetActorCookie(w, actor)
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AuthMiddleware) actorFromRequest(r *http.Request) (policy.Actor, bool, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return policy.Actor{ID: uuid.New().String(), Role: a.defaultRole}, true, nil
	}

	actor, valid := a.parseCookie(cookie.Value)
	if !valid {
		return policy.Actor{}, false, errInvalidCookie
	}

	return actor, false, nil
}

func (a *AuthMiddleware) SetActorCookie(w http.ResponseWriter, actor policy.Actor) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    a.Sign(actor),
		Path:     "/",
		Expires:  time.Now().Add(cookieExpires),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *AuthMiddleware) Sign(actor policy.Actor) string {
	payload := actor.ID + "." + actor.Role
	return payload + "." + a.signature(payload)
}

func (a *AuthMiddleware) signature(payload string) string {
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (a *AuthMiddleware) parseCookie(value string) (policy.Actor, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return policy.Actor{}, false
	}

	expected := a.signature(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return policy.Actor{}, false
	}

	return policy.Actor{ID: parts[0], Role: parts[1]}, true
}

func ActorFromContext(ctx context.Context) (policy.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(policy.Actor)
	return actor, ok
}
