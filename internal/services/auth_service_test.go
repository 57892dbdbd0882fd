package services

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_SignUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAuthService(db, nil)

	t.Run("successful sign-up", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM users WHERE email").
			WithArgs("al@x.com").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO users").
			WithArgs("Al Pacino", "al@x.com", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		body := []byte(`{"name":"Al Pacino","email":"al@x.com","password":"abc123"}`)
		r := httptest.NewRequest("POST", "/sign-up", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.SignUp(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM users WHERE email").
			WithArgs("al@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		body := []byte(`{"name":"Al Pacino","email":"al@x.com","password":"abc123"}`)
		r := httptest.NewRequest("POST", "/sign-up", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.SignUp(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("markup is stripped before storage", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM users WHERE email").
			WithArgs("al@x.com").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO users").
			WithArgs("Al Pacino", "al@x.com", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		body := []byte(`{"name":"Al <b>Pacino</b>","email":"al@x.com","password":"abc123"}`)
		r := httptest.NewRequest("POST", "/sign-up", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.SignUp(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("collected validation messages", func(t *testing.T) {
		body := []byte(`{"name":"Al","email":"nope","password":"***"}`)
		r := httptest.NewRequest("POST", "/sign-up", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.SignUp(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Len(t, resp.Messages, 3)
	})

	t.Run("invalid request body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/sign-up", bytes.NewBuffer([]byte("invalid")))
		w := httptest.NewRecorder()

		service.SignUp(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewAuthService(db, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcryptCost)
	assert.NoError(t, err)

	t.Run("successful login", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, password FROM users").
			WithArgs("al@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password"}).
				AddRow(1, "Al Pacino", string(hash)))
		mock.ExpectQuery("SELECT token FROM session_tokens").
			WithArgs(int64(1)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO session_tokens").
			WithArgs(int64(1), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		body := []byte(`{"email":"al@x.com","password":"abc123"}`)
		r := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp LoginResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Al Pacino", resp.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second login replaces the token in place", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, password FROM users").
			WithArgs("al@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password"}).
				AddRow(1, "Al Pacino", string(hash)))
		mock.ExpectQuery("SELECT token FROM session_tokens").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("stale-token"))
		// The upsert targets the existing row; no second row is ever created.
		mock.ExpectExec("INSERT INTO session_tokens").
			WithArgs(int64(1), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		body := []byte(`{"email":"al@x.com","password":"abc123"}`)
		r := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp LoginResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NotEqual(t, "stale-token", resp.Token)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, password FROM users").
			WithArgs("ghost@x.com").
			WillReturnError(sql.ErrNoRows)

		body := []byte(`{"email":"ghost@x.com","password":"abc123"}`)
		r := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Email not registered", resp.Error)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, password FROM users").
			WithArgs("al@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password"}).
				AddRow(1, "Al Pacino", string(hash)))

		body := []byte(`{"email":"al@x.com","password":"wrong1"}`)
		r := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Wrong password", resp.Error)
	})

	t.Run("login body follows the same password rule as sign-up", func(t *testing.T) {
		body := []byte(`{"email":"al@x.com","password":"has spaces!"}`)
		r := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		service.Login(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
