package repository

import (
	"context"
	"errors"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionMemberSelect = "transactions.*, members.first_name AS member_first_name, members.last_name AS member_last_name"

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByIDWithMember(ctx context.Context, id string) (*domain.TransactionWithMember, error) {
	var tx domain.TransactionWithMember
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select(transactionMemberSelect).
		Joins("JOIN members ON members.id = transactions.member_id").
		Where("transactions.id = ?", id).
		Take(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionWithMember, int64, error) {
	base := r.db.WithContext(ctx).Table("transactions")
	if filter.Type != "" {
		base = base.Where("transactions.type = ?", filter.Type)
	}
	if filter.MemberID != "" {
		base = base.Where("transactions.member_id = ?", filter.MemberID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	var txs []domain.TransactionWithMember
	err := base.
		Select(transactionMemberSelect).
		Joins("JOIN members ON members.id = transactions.member_id").
		Order("transactions.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
