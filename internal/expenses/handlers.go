package expenses

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		AmountCents int64  `json:"amount_cents"`
		Date        string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Description == "" || input.AmountCents <= 0 {
		http.Error(w, "description and a positive amount_cents are required", http.StatusBadRequest)
		return
	}

	date := time.Now().UTC()
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	expense := Expense{
		ID:          uuid.NewString(),
		Description: input.Description,
		Category:    input.Category,
		AmountCents: input.AmountCents,
		Date:        date,
	}
	if err := db.DB.Create(&expense).Error; err != nil {
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(expense)
}

func ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	var list []Expense

	q := db.DB
	if category := r.URL.Query().Get("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Order("date DESC").Find(&list).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func GetExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var expense Expense

	if err := db.DB.First(&expense, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

func UpdateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Description *string `json:"description"`
		Category    *string `json:"category"`
		AmountCents *int64  `json:"amount_cents"`
		Date        *string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var expense Expense
	if err := db.DB.First(&expense, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.AmountCents != nil {
		if *input.AmountCents <= 0 {
			http.Error(w, "amount_cents must be positive", http.StatusBadRequest)
			return
		}
		updates["amount_cents"] = *input.AmountCents
	}
	if input.Date != nil {
		parsed, err := time.Parse("2006-01-02", *input.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		updates["date"] = parsed
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&expense).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update expense", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

func DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var expense Expense
	if err := db.DB.First(&expense, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&expense).Error; err != nil {
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
