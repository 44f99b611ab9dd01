package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ranjithui/rental-loan-calculator/internal/domain/amortization"
	"github.com/ranjithui/rental-loan-calculator/internal/reference"
	uc "github.com/ranjithui/rental-loan-calculator/internal/usecase/calculation"
)

type CalculationHandler struct {
	uc  *uc.Usecase
	ref reference.Tables
}

func NewCalculationHandler(u *uc.Usecase, ref reference.Tables) *CalculationHandler {
	return &CalculationHandler{uc: u, ref: ref}
}

type computeReq struct {
	PropertyValue         float64 `json:"property_value" validate:"required,gt=0,dec2"`
	DownPaymentPct        float64 `json:"down_payment_pct" validate:"gte=0,lte=100"`
	AnnualInterestRatePct float64 `json:"annual_interest_rate_pct" validate:"gte=0,lte=100"`
	TenureYears           int     `json:"tenure_years" validate:"required,gte=1,lte=100"`
	AnnualRentalYieldPct  float64 `json:"annual_rental_yield_pct" validate:"gte=0,lte=100"`
	Currency              string  `json:"currency" validate:"omitempty,curcode"`
	MaxMonths             int     `json:"max_months" validate:"gte=0,lte=12000"`
}

// displayAmounts is the presentation block: headline figures converted with
// the static table and labeled with the currency symbol. The engine's own
// outputs stay in base units.
type displayAmounts struct {
	Currency            string  `json:"currency"`
	Symbol              string  `json:"symbol"`
	LoanAmount          float64 `json:"loan_amount"`
	MonthlyPayment      float64 `json:"monthly_payment"`
	MonthlyRentalIncome float64 `json:"monthly_rental_income"`
	TotalInterestPaid   float64 `json:"total_interest_paid"`
}

type calculationResponse struct {
	uc.CalculationDTO
	Display displayAmounts `json:"display"`
}

type horizonResponse struct {
	Error              string  `json:"error"`
	MaxMonths          int     `json:"max_months"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (h *CalculationHandler) display(cur reference.Currency, dto *uc.CalculationDTO) displayAmounts {
	return displayAmounts{
		Currency:            cur.Code,
		Symbol:              cur.Symbol,
		LoanAmount:          round2(dto.LoanAmount * cur.Rate),
		MonthlyPayment:      round2(dto.MonthlyPayment * cur.Rate),
		MonthlyRentalIncome: round2(dto.MonthlyRentalIncome * cur.Rate),
		TotalInterestPaid:   round2(dto.TotalInterestPaid * cur.Rate),
	}
}

func (h *CalculationHandler) CreateCalculation(c echo.Context) error {
	var req computeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	code := req.Currency
	if code == "" {
		code = h.ref.BaseCurrency
	}
	cur, ok := h.ref.Currency(code)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "currency", Message: "unknown currency code " + code}},
		})
	}

	dto, err := h.uc.Compute(c.Request().Context(), uc.ComputeInput{
		PropertyValue:         req.PropertyValue,
		DownPaymentPct:        req.DownPaymentPct,
		AnnualInterestRatePct: req.AnnualInterestRatePct,
		TenureYears:           req.TenureYears,
		AnnualRentalYieldPct:  req.AnnualRentalYieldPct,
		Currency:              cur.Code,
		MaxMonths:             req.MaxMonths,
	})
	if err != nil {
		var hz *amortization.HorizonExhaustedError
		if errors.As(err, &hz) {
			return c.JSON(http.StatusUnprocessableEntity, horizonResponse{
				Error:              "loan does not clear within the simulation horizon",
				MaxMonths:          hz.MaxMonths,
				OutstandingBalance: round2(hz.OutstandingBalance),
			})
		}
		var inv *amortization.InvalidInputError
		if errors.As(err, &inv) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: inv.Field, Message: inv.Reason}},
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusCreated, calculationResponse{
		CalculationDTO: *dto,
		Display:        h.display(cur, dto),
	})
}

func (h *CalculationHandler) GetCalculation(c echo.Context) error {
	calculationID := c.Param("calculation_id")
	dto, err := h.uc.Get(c.Request().Context(), calculationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	cur, ok := h.ref.Currency(dto.Currency)
	if !ok {
		cur, _ = h.ref.Currency(h.ref.BaseCurrency)
	}
	return c.JSON(http.StatusOK, calculationResponse{
		CalculationDTO: *dto,
		Display:        h.display(cur, dto),
	})
}

func (h *CalculationHandler) ListCalculations(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "limit", Message: "must be a positive integer"}},
			})
		}
		limit = n
	}
	dtos, err := h.uc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"calculations": dtos})
}
