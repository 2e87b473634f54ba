package http

import (
	"net/http"

	"messbook/internal/core"
	"messbook/internal/log"
	"messbook/internal/report"
)

// Wire representations. Amounts travel both as integer cents and as the
// formatted decimal string so clients never re-implement money math.

type memberDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RoomNo     string `json:"roomNo,omitempty"`
	JoinedDate string `json:"joinedDate"`
}

type depositDTO struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	MemberID    string `json:"memberId,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type expenseDTO struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Items       string `json:"items"`
	ShopperName string `json:"shopperName,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func toMemberDTO(m core.Member) memberDTO {
	return memberDTO{ID: m.ID, Name: m.Name, RoomNo: m.RoomNo, JoinedDate: m.JoinedDate.String()}
}

func toDepositDTO(d core.Deposit) depositDTO {
	return depositDTO{
		ID:          d.ID,
		AmountCents: d.Amount.Cents,
		Amount:      d.Amount.String(),
		Date:        d.Date.String(),
		MemberID:    d.MemberID,
		Notes:       d.Notes,
	}
}

func toExpenseDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		AmountCents: e.Amount.Cents,
		Amount:      e.Amount.String(),
		Date:        e.Date.String(),
		Items:       e.Items,
		ShopperName: e.ShopperName,
		Notes:       e.Notes,
	}
}

func toDepositDTOs(ds []core.Deposit) []depositDTO {
	out := make([]depositDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDepositDTO(d))
	}
	return out
}

func toExpenseDTOs(es []core.Expense) []expenseDTO {
	out := make([]expenseDTO, 0, len(es))
	for _, e := range es {
		out = append(out, toExpenseDTO(e))
	}
	return out
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Snapshot()
	out := make([]memberDTO, 0, len(snap.Members))
	for _, m := range snap.Members {
		out = append(out, toMemberDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		RoomNo     string `json:"roomNo"`
		JoinedDate string `json:"joinedDate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	joined, err := core.ParseDate(req.JoinedDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid joinedDate")
		return
	}

	added, err := s.svc.AddMember(r.Context(), core.Member{
		Name:       sanitizeInput(req.Name),
		RoomNo:     sanitizeInput(req.RoomNo),
		JoinedDate: joined,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toMemberDTO(added))
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteMember(r.Context(), r.PathValue("id")); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete member failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDeposits(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Snapshot()
	if r.URL.Query().Has("year") || r.URL.Query().Has("month") {
		year, month := parseYearMonth(r)
		writeJSON(w, http.StatusOK, toDepositDTOs(report.MonthDeposits(snap, year, month)))
		return
	}
	writeJSON(w, http.StatusOK, toDepositDTOs(report.RecentDeposits(snap)))
}

func (s *Server) handleAddDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount   string `json:"amount"`
		Date     string `json:"date"`
		MemberID string `json:"memberId"`
		Notes    string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	added, err := s.svc.AddDeposit(r.Context(), core.Deposit{
		Amount:   amount,
		Date:     date,
		MemberID: req.MemberID,
		Notes:    sanitizeInput(req.Notes),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toDepositDTO(added))
}

func (s *Server) handleDeleteDeposit(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteDeposit(r.Context(), r.PathValue("id")); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete deposit failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Snapshot()
	sel := selectionFromQuery(r)
	if r.URL.Query().Has("year") || r.URL.Query().Has("month") {
		year, month := parseYearMonth(r)
		writeJSON(w, http.StatusOK, toExpenseDTOs(report.MonthExpenses(snap, year, month, sel)))
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTOs(report.RecentExpenses(snap, sel)))
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      string `json:"amount"`
		Date        string `json:"date"`
		Items       string `json:"items"`
		ShopperName string `json:"shopperName"`
		Notes       string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	added, err := s.svc.AddExpense(r.Context(), core.Expense{
		Amount:      amount,
		Date:        date,
		Items:       sanitizeInput(req.Items),
		ShopperName: sanitizeInput(req.ShopperName),
		Notes:       sanitizeInput(req.Notes),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(added))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete expense failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
