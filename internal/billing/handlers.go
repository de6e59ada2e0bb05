package billing

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func CreateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TraineeID   string `json:"trainee_id"`
		Reference   string `json:"reference"`
		AmountCents int64  `json:"amount_cents"`
		DueDate     string `json:"due_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.TraineeID == "" || input.Reference == "" || input.AmountCents <= 0 {
		http.Error(w, "trainee_id, reference and a positive amount_cents are required", http.StatusBadRequest)
		return
	}

	due, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var trainee members.Trainee
	if err := db.DB.First(&trainee, "id = ?", input.TraineeID).Error; err != nil {
		http.Error(w, "Trainee not found", http.StatusBadRequest)
		return
	}

	// One invoice per trainee per reference month.
	var existing Invoice
	err = db.DB.Where("trainee_id = ? AND reference = ?", trainee.ID, input.Reference).First(&existing).Error
	if err == nil {
		http.Error(w, "Invoice already exists for this month", http.StatusConflict)
		return
	}

	invoice := Invoice{
		ID:          uuid.NewString(),
		TraineeID:   trainee.ID,
		Reference:   input.Reference,
		AmountCents: input.AmountCents,
		DueDate:     due,
		Status:      StatusPending,
	}
	if err := db.DB.Create(&invoice).Error; err != nil {
		http.Error(w, "Failed to create invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(invoice)
}

// overdueAt reports whether a pending invoice is past due at the given
// instant. DueDate parses to midnight, so the invoice stays payable through
// the whole due day and flips at the start of the next one.
func overdueAt(invoice Invoice, now time.Time) bool {
	return invoice.Status == StatusPending && !now.Before(invoice.DueDate.AddDate(0, 0, 1))
}

// refreshStatus flips pending invoices past their due date to overdue. Status
// is corrected lazily on read rather than by a background job; if the write
// fails the stored status is reported unchanged and the next read retries.
func refreshStatus(invoice *Invoice) {
	if !overdueAt(*invoice, time.Now().UTC()) {
		return
	}
	if err := db.DB.Model(invoice).Update("status", StatusOverdue).Error; err != nil {
		log.Printf("[billing] overdue flip failed invoice=%s: %v", invoice.ID, err)
		return
	}
	invoice.Status = StatusOverdue
}

func ListInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	var invoices []Invoice

	q := db.DB
	if traineeID := r.URL.Query().Get("trainee_id"); traineeID != "" {
		q = q.Where("trainee_id = ?", traineeID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Order("due_date DESC").Find(&invoices).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	for i := range invoices {
		refreshStatus(&invoices[i])
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoices)
}

func GetInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var invoice Invoice

	if err := db.DB.First(&invoice, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	refreshStatus(&invoice)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

func MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	var invoice Invoice
	if err := db.DB.First(&invoice, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	if invoice.Status == StatusPaid {
		http.Error(w, "Invoice already paid", http.StatusConflict)
		return
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":  StatusPaid,
		"paid_at": now,
	}
	if err := db.DB.Model(&invoice).Updates(updates).Error; err != nil {
		http.Error(w, "Failed to mark invoice paid", http.StatusInternalServerError)
		return
	}
	invoice.Status = StatusPaid
	invoice.PaidAt = &now

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

func UpdateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AmountCents *int64  `json:"amount_cents"`
		DueDate     *string `json:"due_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var invoice Invoice
	if err := db.DB.First(&invoice, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	if invoice.Status == StatusPaid {
		http.Error(w, "Paid invoices cannot be modified", http.StatusConflict)
		return
	}

	updates := map[string]interface{}{}
	if input.AmountCents != nil {
		if *input.AmountCents <= 0 {
			http.Error(w, "amount_cents must be positive", http.StatusBadRequest)
			return
		}
		updates["amount_cents"] = *input.AmountCents
	}
	if input.DueDate != nil {
		due, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		updates["due_date"] = due
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&invoice).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update invoice", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

func DeleteInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var invoice Invoice
	if err := db.DB.First(&invoice, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&invoice).Error; err != nil {
		http.Error(w, "Failed to delete invoice", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
