package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type TransactionsHandler struct {
	Transactions *service.TransactionService
}

// HandleList returns the company's most recent transactions.
//
//	@Summary		List transactions
//	@Description	Returns recent transactions, newest first. Cost, profit and tax are omitted for the readonly role. Requires records:read.
//	@Tags			Transactions
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			limit		query		int									false	"Page size (default 50, max 500)"
//	@Success		200			{object}	tenantsdk.ListTransactionsResponse	"Transactions"
//	@Failure		400			{object}	tenantsdk.ErrorResponse				"Invalid query"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/transactions [get].
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeBadRequest(w, "limit must be a number")
			return
		}
		limit = n
	}

	txs, err := h.Transactions.List(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := tenantsdk.ListTransactionsResponse{Transactions: make([]tenantsdk.TransactionResponse, len(txs))}
	for i, t := range txs {
		resp.Transactions[i] = toTransaction(t)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one transaction.
//
//	@Summary		Get transaction
//	@Description	Returns a single transaction. Cost, profit and tax are omitted for the readonly role. Requires records:read.
//	@Tags			Transactions
//	@Produce		json
//	@Param			companyID		path		string							true	"Company ID"
//	@Param			transactionID	path		string							true	"Transaction ID"
//	@Success		200				{object}	tenantsdk.TransactionResponse	"Transaction"
//	@Failure		401				{object}	tenantsdk.ErrorResponse			"Missing or invalid token"
//	@Failure		402				{object}	tenantsdk.ErrorResponse			"Subscription inactive"
//	@Failure		403				{object}	tenantsdk.ErrorResponse			"Not a member or role lacks capability"
//	@Failure		404				{object}	tenantsdk.ErrorResponse			"No such transaction"
//	@Failure		500				{object}	tenantsdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/transactions/{transactionID} [get].
func (h *TransactionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.Transactions.Get(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), r.PathValue("transactionID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTransaction(t))
}

// HandleCreate records a new transaction.
//
//	@Summary		Create transaction
//	@Description	Records a financial transaction. occurred_at defaults to now. Requires records:write (admin, finance).
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			request		body		tenantsdk.TransactionRequest		true	"Transaction"
//	@Success		201			{object}	tenantsdk.TransactionResponse		"Created transaction"
//	@Failure		400			{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/transactions [post].
func (h *TransactionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.TransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	var occurred time.Time
	if req.OccurredAt != nil {
		occurred = *req.OccurredAt
	}
	t, err := h.Transactions.Create(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		domain.TransactionInput{
			Description: req.Description,
			Category:    req.Category,
			AmountCents: req.AmountCents,
			CostCents:   req.CostCents,
			ProfitCents: req.ProfitCents,
			TaxCents:    req.TaxCents,
			OccurredAt:  occurred,
		})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTransaction(t))
}

// HandleDelete removes a transaction.
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction. Requires records:write (admin, finance).
//	@Tags			Transactions
//	@Param			companyID		path	string	true	"Company ID"
//	@Param			transactionID	path	string	true	"Transaction ID"
//	@Success		204				"Deleted"
//	@Failure		401				{object}	tenantsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		402				{object}	tenantsdk.ErrorResponse	"Subscription inactive"
//	@Failure		403				{object}	tenantsdk.ErrorResponse	"Not a member or role lacks capability"
//	@Failure		404				{object}	tenantsdk.ErrorResponse	"No such transaction"
//	@Failure		500				{object}	tenantsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/transactions/{transactionID} [delete].
func (h *TransactionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Transactions.Delete(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), r.PathValue("transactionID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
