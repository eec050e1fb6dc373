package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (a *API) authRoutes(r *mux.Router) {
	r.Handle("/token", a.limiter.Middleware(http.HandlerFunc(a.issueToken))).Methods(http.MethodPost)
	r.Handle("/token/revoke", a.protected(a.revokeToken)).Methods(http.MethodPost)
}

// issueToken exchanges form-encoded username/password for a bearer token.
func (a *API) issueToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.fail(w, models.ValidationError("Invalid form body"))
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		a.fail(w, models.ValidationError("username and password are required"))
		return
	}

	user, err := controllers.NewUserController(a.session(r), a.log).Authenticate(username, password)
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		a.fail(w, err)
		return
	}
	token, err := a.tokens.Issue(user.Username)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (a *API) revokeToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentClaims(r)
	if !ok {
		a.fail(w, models.UnauthorizedError("Could not validate credentials"))
		return
	}
	if err := a.tokens.Revoke(r.Context(), claims); err != nil {
		a.fail(w, err)
		return
	}
	a.log.Info("revoked token", zap.String("username", claims.Subject), zap.String("jti", claims.ID))
	w.WriteHeader(http.StatusNoContent)
}
