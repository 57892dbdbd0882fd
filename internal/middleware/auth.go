package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
)

// Context key type to avoid collisions.
type contextKey string

const userIDKey contextKey = "userID"

// sessionKeyPrefix namespaces cached token lookups in Redis.
const sessionKeyPrefix = "session:"

var errUnknownToken = errors.New("unknown token")

// Auth resolves bearer tokens to user identities. Resolution is the sole
// authorization gate: every ledger handler behind it receives the token's
// owning user id in the request context and must scope all queries to it.
type Auth struct {
	db    *sql.DB
	redis *redis.Client
}

// NewAuth creates the auth middleware. The Redis client may be nil, in
// which case every resolution goes to the database.
func NewAuth(db *sql.DB, redisClient *redis.Client) *Auth {
	return &Auth{db: db, redis: redisClient}
}

// Middleware rejects requests whose Authorization header is absent or does
// not resolve to a stored session token.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			unauthorized(w, "Missing token")
			return
		}

		userID, err := a.resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, errUnknownToken) {
				unauthorized(w, "Invalid token")
				return
			}
			log.Printf("[AUTH] Token resolution failed: %v", err)
			sendError(w, "An Internal Error Occurred", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// resolve looks the token up in the cache first, falling back to the
// session store and re-priming the cache on a hit.
func (a *Auth) resolve(ctx context.Context, token string) (int64, error) {
	if a.redis != nil {
		cached, err := a.redis.Get(ctx, sessionKeyPrefix+token).Result()
		if err == nil {
			if userID, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return userID, nil
			}
		} else if err != redis.Nil {
			log.Printf("[AUTH] Session cache read failed: %v", err)
		}
	}

	var userID int64
	err := a.db.QueryRowContext(ctx, "SELECT user_id FROM session_tokens WHERE token = $1", token).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, errUnknownToken
	}
	if err != nil {
		return 0, err
	}

	if a.redis != nil {
		if err := a.redis.Set(ctx, sessionKeyPrefix+token, strconv.FormatInt(userID, 10), 0).Err(); err != nil {
			log.Printf("[AUTH] Session cache write failed: %v", err)
		}
	}

	return userID, nil
}

// WithUserID returns a context carrying the resolved user identity.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID retrieves the authenticated user id from the request context.
func UserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(userIDKey).(int64)
	return userID, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	sendError(w, message, http.StatusUnauthorized)
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
