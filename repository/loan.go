package repository

import (
	"context"
	"errors"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"gorm.io/gorm"
)

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) domain.LoanRepository {
	return &loanRepository{db: db}
}

const loanMemberSelect = "loans.*, members.first_name AS member_first_name, members.last_name AS member_last_name"

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	var loan domain.Loan
	if err := r.db.WithContext(ctx).First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) GetByIDWithMember(ctx context.Context, id string) (*domain.LoanWithMember, error) {
	var loan domain.LoanWithMember
	err := r.db.WithContext(ctx).
		Table("loans").
		Select(loanMemberSelect).
		Joins("JOIN members ON members.id = loans.member_id").
		Where("loans.id = ?", id).
		Take(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanWithMember, int64, error) {
	base := r.db.WithContext(ctx).Table("loans")
	if filter.Status != "" {
		base = base.Where("loans.status = ?", filter.Status)
	}
	if filter.MemberID != "" {
		base = base.Where("loans.member_id = ?", filter.MemberID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	var loans []domain.LoanWithMember
	err := base.
		Select(loanMemberSelect).
		Joins("JOIN members ON members.id = loans.member_id").
		Order("loans.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

func (r *loanRepository) ListByMemberID(ctx context.Context, memberID string) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
