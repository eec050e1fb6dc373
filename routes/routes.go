package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/config"
	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

// API holds the dependencies shared by every handler. Controllers are built
// per request on a session bound to the request context.
type API struct {
	cfg     *config.Config
	db      *gorm.DB
	log     *zap.Logger
	tokens  *utils.TokenManager
	storage utils.ObjectStorage
	auth    *middleware.Authenticator
	limiter *middleware.IPRateLimiter
}

// New wires the API. storage may be nil, in which case image uploads answer 503.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger, tokens *utils.TokenManager, storage utils.ObjectStorage) *API {
	return &API{
		cfg:     cfg,
		db:      db,
		log:     log,
		tokens:  tokens,
		storage: storage,
		auth:    middleware.NewAuthenticator(tokens, db, log),
		limiter: middleware.NewIPRateLimiter(cfg.Server.TokenRateLimit, cfg.Server.TokenRateWin, cfg.Server.TrustedProxies),
	}
}

// Close releases the background resources held by the API.
func (a *API) Close() {
	a.limiter.Close()
}

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Handler returns the router wrapped in the global middleware chain:
// request id -> logging -> security headers -> max body -> timeout -> recovery.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.CORS(a.cfg.Server.AllowedOrigins))

	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "leveluplife-api",
		})
	})).Methods(http.MethodGet)

	r.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	a.authRoutes(r)
	a.userRoutes(r)
	a.taskRoutes(r)
	a.itemRoutes(r)
	a.ratingRoutes(r)
	a.commentRoutes(r)
	a.reactionRoutes(r)
	a.questRoutes(r)

	return middleware.RequestIDMiddleware(
		middleware.RequestLogMiddleware(a.log)(
			middleware.SecurityHeadersMiddleware(a.cfg.IsDevelopment())(
				middleware.MaxBodyMiddleware(a.cfg.Server.MaxBodyBytes)(
					middleware.TimeoutMiddleware(a.cfg.Server.RequestTimeout)(
						middleware.RecoveryMiddleware(a.log)(r),
					),
				),
			),
		),
	)
}

// session returns a gorm session bound to the request context.
func (a *API) session(r *http.Request) *gorm.DB {
	return a.db.WithContext(r.Context())
}

func (a *API) protected(h http.HandlerFunc) http.Handler {
	return a.auth.AuthMiddleware(h)
}

func (a *API) fail(w http.ResponseWriter, err error) {
	utils.WriteError(w, a.log, err)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, models.ValidationError(name + " must be a valid UUID")
	}
	return id, nil
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", models.ValidationError(name + " is required")
	}
	return v, nil
}

// page reads ?offset= (a page number, scaled by the page size) and ?limit=.
func page(r *http.Request) (offset, limit int, err error) {
	q := r.URL.Query()
	limit = controllers.PageSize
	if v := q.Get("offset"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			return 0, 0, models.ValidationError("offset must be a non-negative integer")
		}
		offset = n * controllers.PageSize
	}
	if v := q.Get("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 || n > 100 {
			return 0, 0, models.ValidationError("limit must be between 1 and 100")
		}
		limit = n
	}
	return offset, limit, nil
}
