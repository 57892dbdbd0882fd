package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
)

// resolvedHandler records the identity the middleware resolved.
func resolvedHandler(got *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			http.Error(w, "no identity", http.StatusInternalServerError)
			return
		}
		*got = userID
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_Middleware(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	t.Run("missing authorization header", func(t *testing.T) {
		auth := NewAuth(db, nil)
		var got int64

		r := httptest.NewRequest("GET", "/transactions", nil)
		w := httptest.NewRecorder()

		auth.Middleware(resolvedHandler(&got)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		auth := NewAuth(db, nil)
		var got int64

		mock.ExpectQuery("SELECT user_id FROM session_tokens").
			WithArgs("ghost-token").
			WillReturnError(sql.ErrNoRows)

		r := httptest.NewRequest("GET", "/transactions", nil)
		r.Header.Set("Authorization", "Bearer ghost-token")
		w := httptest.NewRecorder()

		auth.Middleware(resolvedHandler(&got)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, got)
	})

	t.Run("token resolves via the store", func(t *testing.T) {
		auth := NewAuth(db, nil)
		var got int64

		mock.ExpectQuery("SELECT user_id FROM session_tokens").
			WithArgs("live-token").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))

		r := httptest.NewRequest("GET", "/transactions", nil)
		r.Header.Set("Authorization", "Bearer live-token")
		w := httptest.NewRecorder()

		auth.Middleware(resolvedHandler(&got)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), got)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		auth := NewAuth(db, redisClient)
		var got int64

		redisMock.ExpectGet("session:cached-token").SetVal("42")

		r := httptest.NewRequest("GET", "/transactions", nil)
		r.Header.Set("Authorization", "Bearer cached-token")
		w := httptest.NewRecorder()

		auth.Middleware(resolvedHandler(&got)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss falls through and re-primes", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		auth := NewAuth(db, redisClient)
		var got int64

		redisMock.ExpectGet("session:cold-token").RedisNil()
		mock.ExpectQuery("SELECT user_id FROM session_tokens").
			WithArgs("cold-token").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))
		redisMock.ExpectSet("session:cold-token", "42", 0).SetVal("OK")

		r := httptest.NewRequest("GET", "/transactions", nil)
		r.Header.Set("Authorization", "Bearer cold-token")
		w := httptest.NewRecorder()

		auth.Middleware(resolvedHandler(&got)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("token without Bearer prefix still resolves", func(t *testing.T) {
		auth := NewAuth(db, nil)
		var got int64

		mock.ExpectQuery("SELECT user_id FROM session_tokens").
			WithArgs("bare-token").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

		r := httptest.NewRequest("GET", "/transactions", nil)
		r.Header.Set("Authorization", "bare-token")
		w := httptest.NewRecorder()

		auth.Middleware(resolvedHandler(&got)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(7), got)
	})
}
