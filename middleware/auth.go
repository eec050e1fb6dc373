package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/controllers"
	"leveluplife/models"
	"leveluplife/utils"
)

type contextKey string

const (
	userKey      = contextKey("user")
	claimsKey    = contextKey("claims")
	requestIDKey = contextKey("requestID")
)

// Authenticator resolves a bearer token to the user named by its subject.
type Authenticator struct {
	tokens *utils.TokenManager
	db     *gorm.DB
	log    *zap.Logger
}

func NewAuthenticator(tokens *utils.TokenManager, db *gorm.DB, log *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, db: db, log: log}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	e := models.UnauthorizedError("Could not validate credentials")
	utils.WriteJSON(w, e.StatusCode, e)
}

func (a *Authenticator) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			unauthorized(w)
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

		claims, err := a.tokens.Parse(r.Context(), tokenStr)
		if err != nil {
			a.log.Debug("rejected token", zap.Error(err))
			unauthorized(w)
			return
		}

		user, err := controllers.NewUserController(a.db.WithContext(r.Context()), a.log).GetUserByUsername(claims.Subject)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(userKey).(*models.User)
	return u, ok
}

func CurrentClaims(r *http.Request) (*jwt.RegisteredClaims, bool) {
	c, ok := r.Context().Value(claimsKey).(*jwt.RegisteredClaims)
	return c, ok
}
