package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/finassess/assessment-engine/internal/cache"
	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/internal/narrative"
	"github.com/finassess/assessment-engine/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	s := New(calculation.NewCalculationEngine(), opts)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestNormalize(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := post(t, ts.URL+"/v1/normalize", normalizeRequest{Items: []domain.RawLineItem{
		{Category: "Groceries", Amount: "$200", Frequency: "Weekly"},
		{Category: "Rent", Amount: "2,000", Frequency: "Monthly"},
		{Category: "Typo", Amount: "abc", Frequency: "Monthly"},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[normalizeResponse](t, resp)
	require.Len(t, got.Items, 3)
	assert.True(t, got.Items[0].Monthly.Equal(decimal.RequireFromString("866")), got.Items[0].Monthly.String())
	assert.True(t, got.Items[2].Amount.IsZero())
	assert.True(t, got.TotalMonthly.Equal(decimal.RequireFromString("2866")), got.TotalMonthly.String())
}

func TestTax(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts.URL+"/v1/tax", taxRequest{AnnualIncome: "100000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.NetIncome](t, resp)
	assert.True(t, got.AnnualTax.Equal(decimal.NewFromInt(20788)), got.AnnualTax.String())
	assert.Equal(t, "2024-25", got.FinancialYear)

	resp = post(t, ts.URL+"/v1/tax", taxRequest{AnnualIncome: "100000", FinancialYear: "1999-00"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAmortize(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := post(t, ts.URL+"/v1/amortize", amortizeRequest{Principal: "500000", AnnualRatePercent: "6.5", TermYears: 30, Extra: "500", TargetYears: 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[amortizeResponse](t, resp)
	assert.True(t, got.MonthlyPayment.Equal(decimal.RequireFromString("3160.34")), got.MonthlyPayment.String())
	assert.InDelta(t, 360, got.Baseline.TermMonths, 1)
	require.NotNil(t, got.Comparison)
	assert.True(t, got.Comparison.Improved)
	require.NotNil(t, got.RequiredExtra)
	assert.True(t, got.RequiredExtra.IsPositive())

	resp = post(t, ts.URL+"/v1/amortize", amortizeRequest{Principal: "10000", AnnualRatePercent: "20", Payment: "50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[amortizeResponse](t, resp).Baseline.Infinite)

	resp = post(t, ts.URL+"/v1/amortize", amortizeRequest{Principal: "10000", AnnualRatePercent: "5"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPayoff(t *testing.T) {
	ts := newTestServer(t, Options{})
	debts := []domain.RawDebt{
		{Type: "Credit card", Balance: "5000", MinimumPayment: "100", AnnualInterestRatePercent: "22"},
		{Type: "Car loan", Balance: "2000", MinimumPayment: "50", AnnualInterestRatePercent: "5"},
	}

	resp := post(t, ts.URL+"/v1/payoff", payoffRequest{Debts: debts, ExtraMonthlyBudget: "300"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.DebtReport](t, resp)
	assert.Equal(t, domain.Avalanche, got.Recommended)
	assert.True(t, got.Avalanche.Converged)
	assert.True(t, got.Avalanche.TotalInterestPaid.LessThanOrEqual(got.Snowball.TotalInterestPaid))

	resp = post(t, ts.URL+"/v1/payoff", payoffRequest{Debts: debts, Rollover: "sideways"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGrowth(t *testing.T) {
	ts := newTestServer(t, Options{})
	req := growthRequest{GrowthPlan: domain.GrowthPlan{
		Balance:           "1000",
		Contribution:      domain.RawAmount{Amount: "500", Frequency: "Monthly"},
		AnnualRatePercent: "7.5",
		Years:             1,
	}}
	resp := post(t, ts.URL+"/v1/growth", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.GrowthReport](t, resp)
	assert.Equal(t, "Growth", got.Name)
	assert.True(t, got.FinalBalance.GreaterThan(decimal.NewFromInt(7000)))

	req.Years = 0
	resp = post(t, ts.URL+"/v1/growth", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInputLimits(t *testing.T) {
	ts := newTestServer(t, Options{})

	rejected := []struct {
		name string
		path string
		body string
	}{
		{"growth horizon", "/v1/growth", `{"balance":"1000","annual_rate_percent":"5","years":2000000}`},
		{"loan term", "/v1/amortize", `{"principal":"500000","annual_rate_percent":"6","term_years":2000000}`},
		{"negative loan term", "/v1/amortize", `{"principal":"500000","annual_rate_percent":"6","payment":"3000","term_years":-1}`},
		{"loan target", "/v1/amortize", `{"principal":"500000","annual_rate_percent":"6","term_years":30,"target_years":61}`},
		{"bracket threshold exponent", "/v1/tax", `{"annual_income":"100000","brackets":[{"threshold":"1e20000000","marginal_rate":"0.3"}]}`},
		{"bracket rate exponent", "/v1/tax", `{"annual_income":"100000","brackets":[{"threshold":"0","marginal_rate":"1e-20000000"}]}`},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, json.RawMessage(tt.body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp := post(t, ts.URL+"/v1/growth", json.RawMessage(`{"balance":"1000","annual_rate_percent":"5","years":60}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, calculation.MaxGrowthMonths, decode[domain.GrowthReport](t, resp).Months)

	resp = post(t, ts.URL+"/v1/normalize", normalizeRequest{Items: []domain.RawLineItem{
		{Category: "Huge", Amount: "1e20000000", Frequency: "Weekly"},
		{Category: "Rent", Amount: "100", Frequency: "Monthly"},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[normalizeResponse](t, resp)
	assert.True(t, got.Items[0].Amount.IsZero())
	assert.True(t, got.TotalMonthly.Equal(decimal.NewFromInt(100)), got.TotalMonthly.String())
}

func TestPureEndpointsAreCached(t *testing.T) {
	ts := newTestServer(t, Options{Cache: cache.NewMemoryCache()})
	body := taxRequest{AnnualIncome: "90000"}

	first := post(t, ts.URL+"/v1/tax", body)
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "MISS", first.Header.Get("X-Cache"))

	second := post(t, ts.URL+"/v1/tax", body)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "HIT", second.Header.Get("X-Cache"))
	assert.Equal(t, decode[domain.NetIncome](t, first).AnnualTax.String(), decode[domain.NetIncome](t, second).AnnualTax.String())
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RateLimit: 2, RateWindow: time.Hour})
	for i := 0; i < 2; i++ {
		resp := post(t, ts.URL+"/v1/tax", taxRequest{AnnualIncome: "1"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := post(t, ts.URL+"/v1/tax", taxRequest{AnnualIncome: "1"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode, "health checks are not limited")
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"))

	now = now.Add(2 * time.Hour)
	rl.cleanup()
	assert.Empty(t, rl.clients)
	rl.Stop()
}

func TestAssessmentLifecycle(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	defer db.Close()
	ts := newTestServer(t, Options{Store: db, Narrator: narrative.NewGenerator(nil, nil)})

	input := domain.Assessment{
		Name:          "API household",
		FinancialYear: "2024-25",
		StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Income:        []domain.RawLineItem{{Category: "Salary", Amount: "100000", Frequency: "Yearly"}},
		Expenses:      []domain.RawLineItem{{Category: "Rent", Amount: "2000", Frequency: "Monthly"}},
		Goals:         []string{"Own the house outright"},
	}
	resp := post(t, ts.URL+"/v1/assessments", input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[assessmentResponse](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "API household", created.Report.Name)

	get, err := http.Get(ts.URL + "/v1/assessments/" + created.ID)
	require.NoError(t, err)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)
	rec := decode[store.Record](t, get)
	assert.Equal(t, created.ID, rec.ID)

	sum := post(t, ts.URL+"/v1/assessments/"+created.ID+"/summary", struct{}{})
	require.Equal(t, http.StatusOK, sum.StatusCode)
	summary := decode[narrative.Summary](t, sum)
	assert.Equal(t, "fallback", summary.Source)
	assert.Contains(t, summary.Text, "Own the house outright")

	list, err := http.Get(ts.URL + "/v1/assessments")
	require.NoError(t, err)
	defer list.Body.Close()
	assert.Len(t, decode[[]store.Summary](t, list), 1)

	missing, err := http.Get(ts.URL + "/v1/assessments/does-not-exist")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAssessmentValidationAndNoStore(t *testing.T) {
	ts := newTestServer(t, Options{})

	bad := post(t, ts.URL+"/v1/assessments", domain.Assessment{FinancialYear: "1999-00"})
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	ok := post(t, ts.URL+"/v1/assessments", domain.Assessment{Name: "ephemeral"})
	require.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Empty(t, decode[assessmentResponse](t, ok).ID)

	get, err := http.Get(ts.URL + "/v1/assessments/x")
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, get.StatusCode)
}
