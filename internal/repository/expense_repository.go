package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"spendly-be/internal/entities"
)

// ErrExpenseNotFound is returned when no expense matches the lookup.
var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseRepository defines the interface for expense database operations
type ExpenseRepository interface {
	Create(userID, description string, amount float64, category string, expenseDate time.Time) (*entities.Expense, error)
	FindByID(id string) (*entities.Expense, error)
	FindByUser(userID string) ([]*entities.Expense, error)
	FindByUserAndDateRange(userID string, startDate, endDate time.Time) ([]*entities.Expense, error)
	Update(id, description string, amount float64, category string, expenseDate time.Time) (*entities.Expense, error)
	Delete(id string) error
	CategoryTotals(userID string) ([]*entities.CategoryTotal, error)
}

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = "id, user_id, description, amount, category, expense_date, created_at, updated_at"

// Create inserts a new expense into the database
func (r *expenseRepository) Create(userID, description string, amount float64, category string, expenseDate time.Time) (*entities.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, description, amount, category, expense_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + expenseColumns

	expense, err := r.scanOne(r.db.QueryRow(query, userID, description, amount, category, expenseDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// FindByID finds an expense by ID (UUID)
func (r *expenseRepository) FindByID(id string) (*entities.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	expense, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrExpenseNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
		// invalid_text_representation: the id is not a UUID at all
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}

// FindByUser retrieves all expenses for a user, newest expense date first
func (r *expenseRepository) FindByUser(userID string) ([]*entities.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY expense_date DESC, created_at DESC
	`
	return r.queryMany(query, userID)
}

// FindByUserAndDateRange retrieves a user's expenses with an expense date in
// [startDate, endDate] inclusive, newest expense date first
func (r *expenseRepository) FindByUserAndDateRange(userID string, startDate, endDate time.Time) ([]*entities.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND expense_date BETWEEN $2 AND $3
		ORDER BY expense_date DESC, created_at DESC
	`
	return r.queryMany(query, userID, startDate, endDate)
}

// Update replaces all mutable fields of an expense
func (r *expenseRepository) Update(id, description string, amount float64, category string, expenseDate time.Time) (*entities.Expense, error) {
	query := `
		UPDATE expenses
		SET description = $1, amount = $2, category = $3, expense_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + expenseColumns

	expense, err := r.scanOne(r.db.QueryRow(query, description, amount, category, expenseDate, id))
	if err == sql.ErrNoRows {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// Delete permanently removes an expense
func (r *expenseRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// CategoryTotals aggregates a user's spending per category
func (r *expenseRepository) CategoryTotals(userID string) ([]*entities.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE user_id = $1
		GROUP BY category
		ORDER BY 2 DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}
	defer rows.Close()

	var totals []*entities.CategoryTotal
	for rows.Next() {
		var total entities.CategoryTotal
		if err := rows.Scan(&total.Category, &total.Total, &total.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, &total)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}

func (r *expenseRepository) scanOne(row *sql.Row) (*entities.Expense, error) {
	var expense entities.Expense
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Description,
		&expense.Amount,
		&expense.Category,
		&expense.ExpenseDate,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) queryMany(query string, args ...interface{}) ([]*entities.Expense, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*entities.Expense
	for rows.Next() {
		var expense entities.Expense
		err := rows.Scan(
			&expense.ID,
			&expense.UserID,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
			&expense.ExpenseDate,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &expense)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}
