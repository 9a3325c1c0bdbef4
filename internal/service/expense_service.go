package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spendly-be/internal/cache"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"
	"spendly-be/internal/repository"
)

const summaryCacheTTL = 10 * time.Minute

// ExpenseService defines the interface for expense business logic. Every
// method takes the authenticated user's ID explicitly; there is no ambient
// request identity at this layer.
type ExpenseService interface {
	ListExpenses(userID, filter string, startDate, endDate *time.Time) ([]*models.ExpenseResponse, error)
	GetExpense(userID, id string) (*models.ExpenseResponse, error)
	CreateExpense(userID string, req *models.ExpenseRequest) (*models.ExpenseResponse, error)
	UpdateExpense(userID, id string, req *models.ExpenseRequest) (*models.ExpenseResponse, error)
	DeleteExpense(userID, id string) error
	CategorySummary(userID string) (*models.SummaryResponse, error)
}

type expenseService struct {
	repo  repository.ExpenseRepository
	cache cache.Cache
	ctx   context.Context
	now   func() time.Time
}

// NewExpenseService creates a new expense service. cacheClient may be nil;
// the service then skips summary caching.
func NewExpenseService(repo repository.ExpenseRepository, cacheClient cache.Cache) ExpenseService {
	return &expenseService{
		repo:  repo,
		cache: cacheClient,
		ctx:   context.Background(),
		now:   time.Now,
	}
}

// ListExpenses returns the user's expenses, newest expense date first.
// A recognized filter wins over explicit dates; an unrecognized filter falls
// back to all expenses. With no filter, both dates select an inclusive range
// and supplying only one of them is an error.
func (s *expenseService) ListExpenses(userID, filter string, startDate, endDate *time.Time) ([]*models.ExpenseResponse, error) {
	if filter != "" {
		today := s.today()
		var start time.Time
		switch strings.ToLower(filter) {
		case "week":
			start = today.AddDate(0, 0, -7)
		case "month":
			start = today.AddDate(0, -1, 0)
		case "3months":
			start = today.AddDate(0, -3, 0)
		default:
			return s.listAll(userID)
		}
		return s.listRange(userID, start, today)
	}

	if startDate != nil || endDate != nil {
		if startDate == nil || endDate == nil {
			return nil, ErrInvalidDateRange
		}
		if startDate.After(*endDate) {
			return nil, ErrInvalidDateRange
		}
		return s.listRange(userID, *startDate, *endDate)
	}

	return s.listAll(userID)
}

// GetExpense fetches a single expense owned by the user
func (s *expenseService) GetExpense(userID, id string) (*models.ExpenseResponse, error) {
	expense, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return mapToResponse(expense), nil
}

// CreateExpense persists a new expense for the user. The request is assumed
// to have passed validation already.
func (s *expenseService) CreateExpense(userID string, req *models.ExpenseRequest) (*models.ExpenseResponse, error) {
	expense, err := s.repo.Create(userID, req.Description, req.Amount, req.Category, req.Date())
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.invalidateSummary(userID)
	return mapToResponse(expense), nil
}

// UpdateExpense replaces all fields of an expense owned by the user
func (s *expenseService) UpdateExpense(userID, id string, req *models.ExpenseRequest) (*models.ExpenseResponse, error) {
	if _, err := s.findOwned(userID, id); err != nil {
		return nil, err
	}

	expense, err := s.repo.Update(id, req.Description, req.Amount, req.Category, req.Date())
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.invalidateSummary(userID)
	return mapToResponse(expense), nil
}

// DeleteExpense permanently removes an expense owned by the user
func (s *expenseService) DeleteExpense(userID, id string) error {
	if _, err := s.findOwned(userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.invalidateSummary(userID)
	return nil
}

// CategorySummary returns per-category totals for the user, cached per user
// and invalidated on every write.
func (s *expenseService) CategorySummary(userID string) (*models.SummaryResponse, error) {
	cacheKey := summaryCacheKey(userID)
	if s.cache != nil {
		var cached models.SummaryResponse
		if err := s.cache.GetJSON(s.ctx, cacheKey, &cached); err == nil && cached.Categories != nil {
			return &cached, nil
		}
	}

	totals, err := s.repo.CategoryTotals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	summary := &models.SummaryResponse{
		Categories: make([]models.CategorySummaryItem, 0, len(totals)),
	}
	for _, t := range totals {
		summary.Total += t.Total
		summary.Categories = append(summary.Categories, models.CategorySummaryItem{
			Category: t.Category,
			Total:    t.Total,
			Count:    t.Count,
		})
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, cacheKey, summary, summaryCacheTTL)
	}
	return summary, nil
}

// findOwned fetches an expense and checks ownership. Existence is checked
// before ownership: probing another user's expense yields a 403, not a 404.
func (s *expenseService) findOwned(userID, id string) (*entities.Expense, error) {
	expense, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, ErrNotExpenseOwner
	}
	return expense, nil
}

func (s *expenseService) listAll(userID string) ([]*models.ExpenseResponse, error) {
	expenses, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return mapAllToResponse(expenses), nil
}

func (s *expenseService) listRange(userID string, startDate, endDate time.Time) ([]*models.ExpenseResponse, error) {
	expenses, err := s.repo.FindByUserAndDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return mapAllToResponse(expenses), nil
}

func (s *expenseService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *expenseService) invalidateSummary(userID string) {
	if s.cache != nil {
		s.cache.Delete(s.ctx, summaryCacheKey(userID))
	}
}

func summaryCacheKey(userID string) string {
	return fmt.Sprintf("summary:user:%s", userID)
}

func mapToResponse(expense *entities.Expense) *models.ExpenseResponse {
	return &models.ExpenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    expense.Category,
		ExpenseDate: expense.ExpenseDate.Format(time.DateOnly),
	}
}

func mapAllToResponse(expenses []*entities.Expense) []*models.ExpenseResponse {
	responses := make([]*models.ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = mapToResponse(expense)
	}
	return responses
}
