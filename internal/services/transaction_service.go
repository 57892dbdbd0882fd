package services

import (
	"database/sql"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/mywallet/backend/internal/middleware"
	"github.com/mywallet/backend/internal/models"
)

type TransactionService struct {
	db        *sql.DB
	validator *ValidationHelper
}

// TransactionRequest represents the send/receive request payload
// @Description Ledger entry creation structure
type TransactionRequest struct {
	Value       json.RawMessage `json:"value" swaggertype:"number" example:"100"`
	Description *string         `json:"description" example:"salary"`
}

// UpdateTransactionRequest represents the update request payload
// @Description Ledger entry update structure
type UpdateTransactionRequest struct {
	ID          int64           `json:"id" example:"1"`
	Value       json.RawMessage `json:"value" swaggertype:"number" example:"120"`
	Description *string         `json:"description" example:"salary"`
}

// DeleteTransactionRequest represents the delete request payload
// @Description Ledger entry deletion structure
type DeleteTransactionRequest struct {
	ID int64 `json:"id" example:"1"`
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// Send records an outbound transaction
// @Summary Record an outbound transaction
// @Description Create a ledger entry for money leaving the account
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction data"
// @Success 201 "Entry created"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 422 {object} ErrorResponse "Invalid Value / Invalid Description"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /transactions/send [post]
func (ts *TransactionService) Send(w http.ResponseWriter, r *http.Request) {
	ts.createTransaction(w, r, models.TransactionOutbound)
}

// Receive records an inbound transaction
// @Summary Record an inbound transaction
// @Description Create a ledger entry for money entering the account
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction data"
// @Success 201 "Entry created"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 422 {object} ErrorResponse "Invalid Value / Invalid Description"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /transactions/receive [post]
func (ts *TransactionService) Receive(w http.ResponseWriter, r *http.Request) {
	ts.createTransaction(w, r, models.TransactionInbound)
}

func (ts *TransactionService) createTransaction(w http.ResponseWriter, r *http.Request, txType string) {
	userID, ok := middleware.UserID(r)
	if !ok {
		SendErrorResponse(w, "Missing token", http.StatusUnauthorized)
		return
	}

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	value, description, msg := ts.validateEntry(req.Value, req.Description)
	if msg != "" {
		SendErrorResponse(w, msg, http.StatusUnprocessableEntity)
		return
	}

	_, err := ts.db.ExecContext(r.Context(), `
		INSERT INTO transactions (user_id, description, value, type, created_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		userID, description, value, txType)
	if err != nil {
		log.Printf("[LEDGER] Entry creation failed for user %d: %v", userID, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	log.Printf("[LEDGER] %s entry created for user %d", txType, userID)
	w.WriteHeader(http.StatusCreated)
}

// List retrieves all of the caller's transactions
// @Summary List transactions
// @Description Get every ledger entry owned by the authenticated user
// @Tags transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /transactions [get]
func (ts *TransactionService) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		SendErrorResponse(w, "Missing token", http.StatusUnauthorized)
		return
	}

	rows, err := ts.db.QueryContext(r.Context(), `
		SELECT id, user_id, description, value, type, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id`,
		userID)
	if err != nil {
		log.Printf("[LEDGER] Listing failed for user %d: %v", userID, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Value, &tx.Type, &tx.Timestamp); err != nil {
			log.Printf("[LEDGER] Row scan failed for user %d: %v", userID, err)
			SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
			return
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[LEDGER] Listing failed for user %d: %v", userID, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// Update overwrites an entry's value and description
// @Summary Update a transaction
// @Description Overwrite value and description of an owned ledger entry
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body UpdateTransactionRequest true "Update data"
// @Success 200 "Entry updated"
// @Failure 401 {object} ErrorResponse "Missing token / Missing id"
// @Failure 422 {object} ErrorResponse "Invalid Value / Invalid Description"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /transactions [put]
func (ts *TransactionService) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		SendErrorResponse(w, "Missing token", http.StatusUnauthorized)
		return
	}

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.ID == 0 {
		SendErrorResponse(w, "Missing id", http.StatusUnauthorized)
		return
	}

	value, description, msg := ts.validateEntry(req.Value, req.Description)
	if msg != "" {
		SendErrorResponse(w, msg, http.StatusUnprocessableEntity)
		return
	}

	// The user_id predicate is the ownership gate: an id belonging to
	// someone else matches zero rows. Type and timestamp are never touched.
	result, err := ts.db.ExecContext(r.Context(), `
		UPDATE transactions SET value = $1, description = $2
		WHERE id = $3 AND user_id = $4`,
		value, description, req.ID, userID)
	if err != nil {
		log.Printf("[LEDGER] Update failed for user %d, entry %d: %v", userID, req.ID, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Printf("[LEDGER] Update matched no entry for user %d, id %d", userID, req.ID)
	}

	w.WriteHeader(http.StatusOK)
}

// Delete removes an owned entry
// @Summary Delete a transaction
// @Description Delete an owned ledger entry by id
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body DeleteTransactionRequest true "Deletion data"
// @Success 200 {object} map[string]string "Entry deleted"
// @Failure 401 {object} ErrorResponse "Missing token / Missing id"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /transactions [delete]
func (ts *TransactionService) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		SendErrorResponse(w, "Missing token", http.StatusUnauthorized)
		return
	}

	var req DeleteTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.ID == 0 {
		SendErrorResponse(w, "Missing id", http.StatusUnauthorized)
		return
	}

	result, err := ts.db.ExecContext(r.Context(),
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2", req.ID, userID)
	if err != nil {
		log.Printf("[LEDGER] Deletion failed for user %d, entry %d: %v", userID, req.ID, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError)
		return
	}

	// A miss (unknown id, or an entry owned by someone else) still reports
	// success; nothing was removed.
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Printf("[LEDGER] Deletion matched no entry for user %d, id %d", userID, req.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Entry deleted"})
}

// validateEntry checks the value/description pair shared by create and
// update. It returns the parsed value, the sanitized description, and the
// rejection message ("" when the entry is acceptable).
func (ts *TransactionService) validateEntry(rawValue json.RawMessage, description *string) (float64, string, string) {
	value, ok := parseValue(rawValue)
	if !ok || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, "", "Invalid Value"
	}

	if description == nil {
		return 0, "", "Invalid Description"
	}
	sanitized := ts.validator.Sanitize(*description)
	if sanitized == "" {
		return 0, "", "Invalid Description"
	}

	return value, sanitized, ""
}

// parseValue accepts a JSON number or a numeric string, matching the loose
// coercion clients of this API have historically relied on.
func parseValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed, true
		}
	}

	return 0, false
}
