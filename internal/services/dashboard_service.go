package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
)

// HouseChart is the per-house payment breakdown, labels and data in matching order
type HouseChart struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// Dashboard summarizes the ledger for the home screen
type Dashboard struct {
	TotalCollected   string     `json:"totalCollected"`
	TotalExpenditure string     `json:"totalExpenditure"`
	NetBalance       string     `json:"netBalance"`
	ActiveLoansCount int64      `json:"activeLoansCount"`
	HouseChart       HouseChart `json:"houseChart"`

	// unformatted figures for clients that chart or compute
	Collected   decimal.Decimal `json:"collected"`
	Expenditure decimal.Decimal `json:"expenditure"`
	Net         decimal.Decimal `json:"net"`
}

// DashboardService builds the dashboard figures
type DashboardService struct {
	*Ledger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(ledger *Ledger) *DashboardService {
	return &DashboardService{Ledger: ledger}
}

// Get returns totals, open loans, net balance and the house chart.
// Net balance also subtracts what open loans still owe.
func (s *DashboardService) Get(ctx context.Context, id access.Identity) (*Dashboard, error) {
	if err := s.authorize(id); err != nil {
		return nil, err
	}

	state, err := s.repos.State.Get(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.repos.Loan.OpenSummary(ctx)
	if err != nil {
		return nil, err
	}
	byHouse, err := s.repos.Payment.SumByHouse(ctx)
	if err != nil {
		return nil, err
	}

	net := state.NetBalance().Sub(loans.Remaining)
	chart := HouseChart{Labels: s.rules.Houses()}
	chart.Data = make([]decimal.Decimal, len(chart.Labels))
	for i, house := range chart.Labels {
		chart.Data[i] = byHouse[house]
	}

	return &Dashboard{
		TotalCollected:   FormatMoney(state.TotalCollected),
		TotalExpenditure: FormatMoney(state.TotalExpenditure),
		NetBalance:       FormatMoney(net),
		ActiveLoansCount: loans.Count,
		HouseChart:       chart,
		Collected:        state.TotalCollected,
		Expenditure:      state.TotalExpenditure,
		Net:              net,
	}, nil
}
