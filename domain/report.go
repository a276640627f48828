package domain

import "context"

// Summary aggregates the figures shown on the dashboard, computed with
// explicit queries rather than loading whole tables.
type Summary struct {
	MemberCount        int64   `json:"memberCount"`
	TotalSavings       float64 `json:"totalSavings"`
	TotalShareCapital  float64 `json:"totalShareCapital"`
	ActiveLoanCount    int64   `json:"activeLoanCount"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}

type ReportRepository interface {
	Summary(ctx context.Context) (*Summary, error)
}

type ReportUseCase interface {
	GetSummary(ctx context.Context) (*Summary, error)
}
