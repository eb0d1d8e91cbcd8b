package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

const maxReceiptSize = 10 << 20

type transactionInput struct {
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    string          `json:"categoryId"`
	OccurredAt    *time.Time      `json:"occurredAt"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	Tags          []string        `json:"tags"`
}

func (in transactionInput) validate() error {
	if !models.ValidKind(in.Kind) {
		return fmt.Errorf("kind must be %q or %q", models.KindIncome, models.KindExpense)
	}
	if !in.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if in.CategoryID == "" {
		return errors.New("categoryId is required")
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("unknown payment method %q", in.PaymentMethod)
	}
	return nil
}

func (in transactionInput) apply(t *models.Transaction, now time.Time) {
	t.Kind = in.Kind
	t.Amount = in.Amount
	t.CategoryID = in.CategoryID
	t.Notes = in.Notes
	t.PaymentMethod = in.PaymentMethod
	t.Tags = in.Tags
	if t.Tags == nil {
		t.Tags = []string{}
	}
	switch {
	case in.OccurredAt != nil:
		t.OccurredAt = *in.OccurredAt
	case t.OccurredAt.IsZero():
		t.OccurredAt = now
	}
}

// ownedTransaction loads the transaction in the path and checks that the
// caller owns it. Records of other owners are reported as missing.
func (h *Handler) ownedTransaction(w http.ResponseWriter, r *http.Request, ownerID string) (*models.Transaction, bool) {
	t, err := h.Repos.Transactions.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if t == nil || t.OwnerID != ownerID {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return nil, false
	}
	return t, true
}

func (h *Handler) transactionFilter(r *http.Request, ownerID string) (store.TransactionFilter, error) {
	f := store.TransactionFilter{
		OwnerID:    ownerID,
		Kind:       r.URL.Query().Get("kind"),
		CategoryID: r.URL.Query().Get("categoryId"),
	}
	if f.Kind != "" && !models.ValidKind(f.Kind) {
		return f, fmt.Errorf("invalid kind %q", f.Kind)
	}

	var err error
	if f.From, err = optionalTimeParam(r, "from", h.location()); err != nil {
		return f, err
	}
	if f.To, err = optionalTimeParam(r, "to", h.location()); err != nil {
		return f, err
	}
	return f, nil
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	filter, err := h.transactionFilter(r, ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := snapshot(r, func(ctx context.Context) (<-chan []models.Transaction, error) {
		return h.Repos.Transactions.Watch(ctx, filter)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// StreamTransactions writes the caller's transaction list as one JSON line
// per change until the client disconnects
func (h *Handler) StreamTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	filter, err := h.transactionFilter(r, ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updates, err := h.Repos.Transactions.Watch(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for transactions := range updates {
		if err := enc.Encode(transactions); err != nil {
			log.Printf("Error streaming transactions to %s: %v", ownerID, err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	t, ok := h.ownedTransaction(w, r, ownerID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in transactionInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t := models.Transaction{OwnerID: ownerID}
	in.apply(&t, h.now())

	saved, err := h.Repos.Transactions.Add(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	h.checkBudget(r.Context(), saved)
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	existing, ok := h.ownedTransaction(w, r, ownerID)
	if !ok {
		return
	}

	var in transactionInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t := *existing
	in.apply(&t, h.now())

	saved, err := h.Repos.Transactions.Update(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	h.checkBudget(r.Context(), saved)
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	t, ok := h.ownedTransaction(w, r, ownerID)
	if !ok {
		return
	}

	if err := h.Repos.Transactions.Delete(r.Context(), t.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResyncTransactions pushes the caller's PENDING and FAILED transactions again
func (h *Handler) ResyncTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	synced, err := h.Repos.Transactions.Resync(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"synced": synced})
}

// UploadReceipt stores the request body as the transaction's receipt
func (h *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if h.Blobs == nil {
		http.Error(w, "Receipt storage is not configured", http.StatusServiceUnavailable)
		return
	}
	t, ok := h.ownedTransaction(w, r, ownerID)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	ext, ok := receiptExtensions[contentType]
	if !ok {
		http.Error(w, "Unsupported receipt type "+contentType, http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxReceiptSize)
	data, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, "Receipt too large or unreadable", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "Receipt is empty", http.StatusBadRequest)
		return
	}

	path := fmt.Sprintf("receipts/%s/receipt_%s_%d%s", ownerID, t.ID, h.now().UnixMilli(), ext)
	ref, err := h.Blobs.Upload(r.Context(), path, contentType, bytes.NewReader(data))
	if err != nil {
		log.Printf("Error uploading receipt for %s: %v", t.ID, err)
		http.Error(w, "Failed to upload receipt", http.StatusBadGateway)
		return
	}

	t.ReceiptRef = ref
	saved, err := h.Repos.Transactions.Update(r.Context(), *t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

var receiptExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// checkBudget re-evaluates the budgets of the month an expense falls in, so
// crossing a threshold notifies right away
func (h *Handler) checkBudget(ctx context.Context, t models.Transaction) {
	if h.Monitor == nil || !t.IsExpense() {
		return
	}
	at := t.OccurredAt.In(h.Monitor.Location())
	if _, err := h.Monitor.Evaluate(ctx, t.OwnerID, int(at.Month()), at.Year()); err != nil {
		log.Printf("Error evaluating budgets for %s: %v", t.OwnerID, err)
	}
}
