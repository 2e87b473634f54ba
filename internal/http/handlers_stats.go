package http

import (
	"net/http"

	"messbook/internal/report"
	"messbook/internal/stats"
)

type totalsDTO struct {
	TotalDepositsCents int64   `json:"totalDepositsCents"`
	TotalDeposits      string  `json:"totalDeposits"`
	TotalExpensesCents int64   `json:"totalExpensesCents"`
	TotalExpenses      string  `json:"totalExpenses"`
	CashInHandCents    int64   `json:"cashInHandCents"`
	CashInHand         string  `json:"cashInHand"`
	TotalMealUnits     float64 `json:"totalMealUnits"`
	MealRate           float64 `json:"mealRate"`
}

type balanceDTO struct {
	MemberID      string  `json:"memberId"`
	Units         float64 `json:"units"`
	DepositsCents int64   `json:"depositsCents"`
	AmountCents   int64   `json:"amountCents"`
	Status        string  `json:"status"`
}

func toTotalsDTO(t stats.Totals) totalsDTO {
	return totalsDTO{
		TotalDepositsCents: t.TotalDeposits.Cents,
		TotalDeposits:      t.TotalDeposits.String(),
		TotalExpensesCents: t.TotalExpenses.Cents,
		TotalExpenses:      t.TotalExpenses.String(),
		CashInHandCents:    t.CashInHand.Cents,
		CashInHand:         t.CashInHand.String(),
		TotalMealUnits:     t.TotalMealUnits,
		MealRate:           t.MealRate,
	}
}

func toBalanceDTO(b stats.Balance) balanceDTO {
	return balanceDTO{
		MemberID:      b.MemberID,
		Units:         b.Units,
		DepositsCents: b.Deposits.Cents,
		AmountCents:   b.AmountCents,
		Status:        string(b.Status),
	}
}

// handleStats recomputes the global totals from the current snapshot. No
// caching anywhere on this path.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toTotalsDTO(stats.Compute(s.svc.Snapshot())))
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances := stats.AllBalances(s.svc.Snapshot())
	out := make([]balanceDTO, 0, len(balances))
	for _, b := range balances {
		out = append(out, toBalanceDTO(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMemberBalance(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberID")
	snap := s.svc.Snapshot()

	found := false
	for _, m := range snap.Members {
		if m.ID == memberID {
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "unknown member")
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(stats.MemberBalance(snap, stats.Compute(snap), memberID)))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	snap := s.svc.Snapshot()

	nameByID := make(map[string]string, len(snap.Members))
	for _, m := range snap.Members {
		nameByID[m.ID] = m.Name
	}
	memberName := func(id string) string {
		if name, ok := nameByID[id]; ok {
			return name
		}
		return id
	}

	summary := report.BuildSummary(snap, year, month, selectionFromQuery(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"year":              summary.Year,
		"month":             summary.Month,
		"deposits":          toDepositDTOs(summary.Deposits),
		"expenses":          toExpenseDTOs(summary.Expenses),
		"depositTotalCents": summary.DepositTotal.Cents,
		"expenseTotalCents": summary.ExpenseTotal.Cents,
		"cashInHandCents":   summary.CashInHand.Cents,
		"shareText":         summary.ShareText(memberName),
	})
}
