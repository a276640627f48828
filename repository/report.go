package repository

import (
	"context"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) domain.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Summary(ctx context.Context) (*domain.Summary, error) {
	var summary domain.Summary
	db := r.db.WithContext(ctx)

	if err := db.Model(&domain.Member{}).Count(&summary.MemberCount).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Savings      float64
		ShareCapital float64
	}
	err := db.Model(&domain.Member{}).
		Select("COALESCE(SUM(savings), 0) AS savings, COALESCE(SUM(share_capital), 0) AS share_capital").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	summary.TotalSavings = totals.Savings
	summary.TotalShareCapital = totals.ShareCapital

	err = db.Model(&domain.Loan{}).
		Where("status IN ?", []string{domain.LoanStatusApproved, domain.LoanStatusActive}).
		Count(&summary.ActiveLoanCount).Error
	if err != nil {
		return nil, err
	}

	var outstanding struct{ Balance float64 }
	err = db.Model(&domain.Loan{}).
		Select("COALESCE(SUM(remaining_balance), 0) AS balance").
		Where("status IN ?", []string{domain.LoanStatusApproved, domain.LoanStatusActive}).
		Scan(&outstanding).Error
	if err != nil {
		return nil, err
	}
	summary.OutstandingBalance = outstanding.Balance

	return &summary, nil
}
