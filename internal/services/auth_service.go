package services

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mywallet/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed; bcrypt embeds a per-password salt in the hash.
const bcryptCost = 10

// sessionCachePrefix must match the prefix the auth middleware reads from.
const sessionCachePrefix = "session:"

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type AuthService struct {
	db        *sql.DB
	redis     *redis.Client
	validator *ValidationHelper
}

// SignUpRequest represents the sign-up request payload
// @Description Sign-up request structure
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50" example:"Al Pacino"`
	Email    string `json:"email" validate:"required,email" example:"al@x.com"`
	Password string `json:"password" validate:"required,alphanum,min=3,max=30" example:"abc123"`
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"al@x.com"`
	Password string `json:"password" validate:"required,alphanum,min=3,max=30" example:"abc123"`
}

// LoginResponse represents the login response
// @Description Login response structure
type LoginResponse struct {
	Token string `json:"token" example:"1f0c91f3-6b2e-4c5a-9d37-0a6f0f6b2a10"`
	Name  string `json:"name" example:"Al Pacino"`
}

func NewAuthService(db *sql.DB, redisClient *redis.Client) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		validator: NewValidationHelper(),
	}
}

// SignUp handles user registration
// @Summary Register a new user
// @Description Register a new user with name, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Sign-up request"
// @Success 201 "User created"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sign-up [post]
func (s *AuthService) SignUp(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Sign-up attempt from IP: %s", r.RemoteAddr)

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AUTH] Sign-up failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Markup is stripped before the rules run, so a name padded out with
	// tags cannot sneak past the length check.
	req.Name = s.validator.Sanitize(req.Name)
	req.Email = s.validator.Sanitize(req.Email)

	if messages := s.validator.ValidateStruct(&req); messages != nil {
		log.Printf("[AUTH] Sign-up validation failed: %v", messages)
		SendValidationResponse(w, messages)
		return
	}

	var existingID int64
	err := s.db.QueryRowContext(r.Context(), "SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingID)
	if err == nil {
		log.Printf("[AUTH] Sign-up rejected - email already registered: %s", req.Email)
		SendErrorResponse(w, "Email already registered", http.StatusConflict)
		return
	}
	if err != sql.ErrNoRows {
		log.Printf("[AUTH] Sign-up lookup failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Printf("[AUTH] Password hashing failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	_, err = s.db.ExecContext(r.Context(),
		"INSERT INTO users (name, email, password) VALUES ($1, $2, $3)",
		req.Name, req.Email, string(hash))
	if err != nil {
		// Two concurrent sign-ups can both pass the existence check; the
		// unique constraint settles the race.
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			SendErrorResponse(w, "Email already registered", http.StatusConflict)
			return
		}
		log.Printf("[AUTH] User creation failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	log.Printf("[AUTH] User created successfully - Email: %s", req.Email)
	w.WriteHeader(http.StatusCreated)
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password, returning a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Failure 404 {object} ErrorResponse "Email not registered"
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AUTH] Login failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = s.validator.Sanitize(req.Email)

	if messages := s.validator.ValidateStruct(&req); messages != nil {
		log.Printf("[AUTH] Login validation failed: %v", messages)
		SendValidationResponse(w, messages)
		return
	}

	var user models.User
	err := s.db.QueryRowContext(r.Context(),
		"SELECT id, name, password FROM users WHERE email = $1", req.Email).
		Scan(&user.ID, &user.Name, &user.Password)
	if err == sql.ErrNoRows {
		log.Printf("[AUTH] Login rejected - unknown email: %s", req.Email)
		SendErrorResponse(w, "Email not registered", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[AUTH] Login lookup failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		log.Printf("[AUTH] Login rejected - wrong password for user %d", user.ID)
		SendErrorResponse(w, "Wrong password", http.StatusUnauthorized)
		return
	}

	session, err := s.issueToken(r, user.ID)
	if err != nil {
		log.Printf("[AUTH] Token issue failed for user %d: %v", user.ID, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	log.Printf("[AUTH] Login successful for user %d", user.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: session.Token, Name: user.Name})
}

// issueToken generates a fresh opaque token and upserts the single session
// row for the user. The atomic ON CONFLICT update is what keeps the
// one-token-per-user invariant under concurrent logins; the last write wins.
func (s *AuthService) issueToken(r *http.Request, userID int64) (*models.SessionToken, error) {
	ctx := r.Context()
	session := &models.SessionToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		Timestamp: time.Now(),
	}

	var previous string
	err := s.db.QueryRowContext(ctx,
		"SELECT token FROM session_tokens WHERE user_id = $1", userID).Scan(&previous)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_tokens (user_id, token, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, created_at = EXCLUDED.created_at`,
		session.UserID, session.Token)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if previous != "" {
			if err := s.redis.Del(ctx, sessionCachePrefix+previous).Err(); err != nil {
				log.Printf("[AUTH] Failed to evict superseded token from cache: %v", err)
			}
		}
		if err := s.redis.Set(ctx, sessionCachePrefix+session.Token, session.UserID, 0).Err(); err != nil {
			log.Printf("[AUTH] Failed to cache session token: %v", err)
		}
	}

	return session, nil
}
