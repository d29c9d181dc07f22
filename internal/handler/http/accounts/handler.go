package accounts_http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/accounts-ledger/internal/ledger"
	"github.com/sheikh-saqib/accounts-ledger/internal/models"
	"github.com/sheikh-saqib/accounts-ledger/internal/storage"
)

// AccountService is the part of the ledger the HTTP layer calls into.
type AccountService interface {
	CreateAccount(account models.Account) (models.Account, error)
	GetAccount(accountID string) (models.Account, error)
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (models.TransferResult, error)
}

type AccountHandler struct {
	service  AccountService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAccountHandler(s AccountService, l *zap.Logger) *AccountHandler {
	return &AccountHandler{service: s, validate: validator.New(), logger: l}
}

type CreateAccountRequest struct {
	AccountID string           `json:"accountId" validate:"required"`
	Balance   *decimal.Decimal `json:"balance" validate:"required"`
}

type TransferRequest struct {
	AccountFromID string           `json:"accountFromId" validate:"required"`
	AccountToID   string           `json:"accountToId" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
}

type TransferResponse struct {
	TransferID    string          `json:"transferId"`
	AccountFromID string          `json:"accountFromId"`
	FromBalance   decimal.Decimal `json:"fromBalance"`
	AccountToID   string          `json:"accountToId"`
	ToBalance     decimal.Decimal `json:"toBalance"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Reason  string            `json:"reason,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
}

func (h *AccountHandler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.service.CreateAccount(models.Account{ID: req.AccountID, Balance: *req.Balance})
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.logger.Info("Created account", zap.String("account_id", account.ID))
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	account, err := h.service.GetAccount(accountID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Transfer(r.Context(), req.AccountFromID, req.AccountToID, *req.Amount)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransferResponse{
		TransferID:    result.TransferID,
		AccountFromID: result.FromAccount,
		FromBalance:   result.FromBalance,
		AccountToID:   result.ToAccount,
		ToBalance:     result.ToBalance,
	})
}

func (h *AccountHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.Debug("Invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return false
	}

	err := h.validate.Struct(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request data"})
		return false
	}

	details := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Type:    fe.Tag(),
		})
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request data", Details: details})
	return false
}

func (h *AccountHandler) respondWithServiceError(w http.ResponseWriter, err error) {
	var invalidTransfer *ledger.InvalidTransferError

	switch {
	case errors.As(err, &invalidTransfer):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error(), Reason: invalidTransfer.Reason})
	case errors.Is(err, ledger.ErrInvalidAccount), errors.Is(err, storage.ErrDuplicateAccountID):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, storage.ErrAccountNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeJSON(w, http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		h.logger.Error("Unexpected ledger error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	default:
		return "Invalid value"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
