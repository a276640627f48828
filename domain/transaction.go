package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeLoan       = "loan"
	TransactionTypeRepayment  = "repayment"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type Transaction struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	MemberID    string    `gorm:"type:uuid;not null;index" json:"memberId"`
	Type        string    `gorm:"not null" json:"type"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string    `json:"description"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TransactionWithMember joins a ledger entry with the member's name for list
// and detail views.
type TransactionWithMember struct {
	Transaction
	MemberFirstName string `json:"memberFirstName"`
	MemberLastName  string `json:"memberLastName"`
}

type TransactionFilter struct {
	Type     string
	MemberID string
	Page     int
	Limit    int
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByIDWithMember(ctx context.Context, id string) (*TransactionWithMember, error)
	List(ctx context.Context, filter TransactionFilter) ([]TransactionWithMember, int64, error)
}

type TransactionUseCase interface {
	CreateTransaction(ctx context.Context, memberID, txType string, amount float64, description string) (*Transaction, error)
	GetAllTransactions(ctx context.Context, filter TransactionFilter) ([]TransactionWithMember, int64, error)
	GetTransactionByID(ctx context.Context, id string) (*TransactionWithMember, error)
}
