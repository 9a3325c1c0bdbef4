package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spendly-be/internal/models"
	"spendly-be/internal/repository"
	"spendly-be/internal/service"
)

type ExpenseController struct {
	expenseService service.ExpenseService
}

func NewExpenseController(expenseService service.ExpenseService) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
	}
}

// List handles GET /api/v1/expenses with optional ?filter= or ?startDate=&endDate=
func (ec *ExpenseController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	startDate, ok := parseDateQuery(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "endDate")
	if !ok {
		return
	}

	expenses, err := ec.expenseService.ListExpenses(userID, c.Query("filter"), startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("List expenses failed: %v", err)
		respondInternal(c)
		return
	}

	if expenses == nil {
		expenses = []*models.ExpenseResponse{}
	}
	c.JSON(http.StatusOK, expenses)
}

// Summary handles GET /api/v1/expenses/summary
func (ec *ExpenseController) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	summary, err := ec.expenseService.CategorySummary(userID)
	if err != nil {
		log.Printf("Expense summary failed: %v", err)
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetByID handles GET /api/v1/expenses/:id
func (ec *ExpenseController) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	expense, err := ec.expenseService.GetExpense(userID, c.Param("id"))
	if err != nil {
		ec.respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Create handles POST /api/v1/expenses
func (ec *ExpenseController) Create(c *gin.Context) {
	userID, req, ok := ec.bindExpenseRequest(c)
	if !ok {
		return
	}

	expense, err := ec.expenseService.CreateExpense(userID, req)
	if err != nil {
		log.Printf("Create expense failed: %v", err)
		respondInternal(c)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// Update handles PUT /api/v1/expenses/:id
func (ec *ExpenseController) Update(c *gin.Context) {
	userID, req, ok := ec.bindExpenseRequest(c)
	if !ok {
		return
	}

	expense, err := ec.expenseService.UpdateExpense(userID, c.Param("id"), req)
	if err != nil {
		ec.respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /api/v1/expenses/:id
func (ec *ExpenseController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := ec.expenseService.DeleteExpense(userID, c.Param("id")); err != nil {
		ec.respondExpenseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Categories handles GET /api/v1/categories
func (ec *ExpenseController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories)
}

// bindExpenseRequest resolves the identity, binds the JSON body and runs the
// explicit validation pass. Services receive pre-validated input only.
func (ec *ExpenseController) bindExpenseRequest(c *gin.Context) (string, *models.ExpenseRequest, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return "", nil, false
	}

	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return "", nil, false
	}

	if fields := req.Validate(time.Now()); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, validationMessage(fields))
		return "", nil, false
	}

	return userID, &req, true
}

func (ec *ExpenseController) respondExpenseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrExpenseNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotExpenseOwner):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		log.Printf("Expense operation failed: %v", err)
		respondInternal(c)
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. On a malformed
// value it writes the 400 response and reports failure.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, name+" must be a valid date in YYYY-MM-DD format")
		return nil, false
	}
	return &date, true
}
