package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/internal/store"
	money "github.com/finassess/assessment-engine/pkg/decimal"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type normalizeRequest struct {
	Items []domain.RawLineItem `json:"items"`
}

type normalizedItem struct {
	Category  string           `json:"category"`
	Amount    decimal.Decimal  `json:"amount"`
	Frequency domain.Frequency `json:"frequency"`
	Monthly   decimal.Decimal  `json:"monthly"`
}

type normalizeResponse struct {
	Items        []normalizedItem       `json:"items"`
	TotalMonthly decimal.Decimal        `json:"total_monthly"`
	ByCategory   []domain.CategoryTotal `json:"by_category"`
}

func (s *Server) handleNormalize(body []byte) (any, error) {
	var req normalizeRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	items := domain.ParseLineItems(req.Items)
	resp := normalizeResponse{TotalMonthly: calculation.SumMonthly(items), ByCategory: calculation.MonthlyByCategory(items)}
	for _, it := range items {
		resp.Items = append(resp.Items, normalizedItem{
			Category:  it.Category,
			Amount:    it.Amount,
			Frequency: it.Frequency,
			Monthly:   calculation.NormalizeToMonthly(it.Amount, it.Frequency),
		})
	}
	return resp, nil
}

type taxRequest struct {
	AnnualIncome  string              `json:"annual_income"`
	FinancialYear string              `json:"financial_year"`
	Brackets      []domain.TaxBracket `json:"brackets,omitempty"`
}

func (s *Server) handleTax(body []byte) (any, error) {
	var req taxRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	table, err := s.engine.TaxTable(req.FinancialYear, req.Brackets)
	if err != nil {
		return nil, badRequest{err}
	}
	return calculation.NewTaxCalculator(table).NetIncome(money.ParseAmount(req.AnnualIncome)), nil
}

type amortizeRequest struct {
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	TermYears         int    `json:"term_years,omitempty"`
	Payment           string `json:"payment,omitempty"` // defaults to the annuity payment over term_years
	Extra             string `json:"extra,omitempty"`   // monthly
	TargetYears       int    `json:"target_years,omitempty"`
}

type amortizeResponse struct {
	MonthlyPayment decimal.Decimal                `json:"monthly_payment"`
	Baseline       domain.AmortizationResult      `json:"baseline"`
	WithExtra      *domain.AmortizationResult     `json:"with_extra,omitempty"`
	Comparison     *domain.AmortizationComparison `json:"comparison,omitempty"`
	RequiredExtra  *decimal.Decimal               `json:"required_extra,omitempty"`
}

func (s *Server) handleAmortize(body []byte) (any, error) {
	var req amortizeRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	principal := money.ParseAmount(req.Principal)
	rate := money.ParseAmount(req.AnnualRatePercent)
	if req.TermYears < 0 || req.TermYears > calculation.MaxProjectionYears {
		return nil, badRequest{fmt.Errorf("term_years must be between 0 and %d", calculation.MaxProjectionYears)}
	}
	if req.TargetYears < 0 || req.TargetYears > calculation.MaxProjectionYears {
		return nil, badRequest{fmt.Errorf("target_years must be between 0 and %d", calculation.MaxProjectionYears)}
	}
	payment := money.ParseAmount(req.Payment)
	if payment.IsZero() {
		if req.TermYears == 0 {
			return nil, badRequest{errors.New("either payment or a positive term_years is required")}
		}
		payment = calculation.AnnuityPayment(principal, rate, req.TermYears*12).Round(2)
	}

	resp := amortizeResponse{MonthlyPayment: payment, Baseline: calculation.Amortize(principal, rate, payment, decimal.Zero)}
	if extra := money.ParseAmount(req.Extra); extra.IsPositive() {
		with := calculation.Amortize(principal, rate, payment, extra)
		cmp := calculation.CompareAmortization(resp.Baseline, with)
		resp.WithExtra, resp.Comparison = &with, &cmp
	}
	if req.TargetYears > 0 {
		if extra, ok := calculation.RequiredExtraPayment(principal, rate, payment, req.TargetYears*12); ok {
			resp.RequiredExtra = &extra
		}
	}
	return resp, nil
}

type payoffRequest struct {
	Debts              []domain.RawDebt `json:"debts"`
	ExtraMonthlyBudget string           `json:"extra_monthly_budget"`
	Rollover           string           `json:"rollover,omitempty"`
	ReorderMonthly     bool             `json:"reorder_monthly,omitempty"`
}

func (s *Server) handlePayoff(body []byte) (any, error) {
	var req payoffRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if _, ok := calculation.ParseRollover(req.Rollover); !ok {
		return nil, badRequest{fmt.Errorf("unknown rollover %q", req.Rollover)}
	}
	return s.engine.RunDebts(domain.ParseDebts(req.Debts), domain.DebtStrategy{
		ExtraMonthlyBudget: req.ExtraMonthlyBudget,
		Rollover:           req.Rollover,
		ReorderMonthly:     req.ReorderMonthly,
	}), nil
}

type growthRequest struct {
	Name string `json:"name,omitempty"`
	domain.GrowthPlan
}

func (s *Server) handleGrowth(body []byte) (any, error) {
	var req growthRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if req.Years <= 0 || req.Years > calculation.MaxProjectionYears {
		return nil, badRequest{fmt.Errorf("years must be between 1 and %d", calculation.MaxProjectionYears)}
	}
	if req.Name == "" {
		req.Name = "Growth"
	}
	return s.engine.RunGrowth(req.Name, &req.GrowthPlan), nil
}

type assessmentResponse struct {
	ID     string                   `json:"id,omitempty"`
	Report *domain.AssessmentReport `json:"report"`
}

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var a domain.Assessment
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.parser.ValidateConfiguration(&a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.engine.RunAssessment(r.Context(), &a)
	if err != nil {
		s.logger.Error("assessment failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "assessment failed")
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, assessmentResponse{Report: report})
		return
	}
	id, err := s.store.SaveAssessment(r.Context(), &a, report)
	if err != nil {
		s.logger.Error("store assessment failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store assessment")
		return
	}
	writeJSON(w, http.StatusCreated, assessmentResponse{ID: id, Report: report})
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.store.ListAssessments(r.Context(), limit)
	if err != nil {
		s.logger.Error("list assessments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list assessments")
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	var goals []string
	if rec.Input != nil {
		goals = rec.Input.Goals
	}
	summary := s.narrator.Summarize(r.Context(), rec.Report, goals)
	if err := s.store.SaveNarrative(r.Context(), rec.ID, summary.Text); err != nil {
		s.logger.Error("save narrative failed", zap.String("id", rec.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store narrative")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment storage is disabled")
		return false
	}
	return true
}

func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetAssessment(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "assessment not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("load assessment failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load assessment")
		return nil, false
	}
	if rec.Report == nil {
		rec.Report = &domain.AssessmentReport{}
	}
	return rec, true
}
