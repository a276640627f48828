package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LoanStatusPending   = "pending"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
)

type Loan struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	MemberID         string    `gorm:"type:uuid;not null;index" json:"memberId"`
	Amount           float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Purpose          string    `gorm:"not null" json:"purpose"`
	InterestRate     float64   `gorm:"type:decimal(5,2);not null" json:"interestRate"`
	Term             int       `gorm:"not null" json:"term"` // months
	StartDate        time.Time `gorm:"not null" json:"startDate"`
	EndDate          time.Time `gorm:"not null" json:"endDate"`
	Status           string    `gorm:"not null;default:pending" json:"status"`
	RemainingBalance float64   `gorm:"type:decimal(10,2);not null" json:"remainingBalance"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LoanWithMember is the composed view returned by list/detail queries: the
// loan joined with the borrowing member's name, instead of a lazily loaded
// association.
type LoanWithMember struct {
	Loan
	MemberFirstName string `json:"memberFirstName"`
	MemberLastName  string `json:"memberLastName"`
}

// LoanFilter narrows list queries. Zero values mean "no filter".
type LoanFilter struct {
	Status   string
	MemberID string
	Page     int
	Limit    int
}

type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	GetByIDWithMember(ctx context.Context, id string) (*LoanWithMember, error)
	List(ctx context.Context, filter LoanFilter) ([]LoanWithMember, int64, error)
	ListByMemberID(ctx context.Context, memberID string) ([]Loan, error)
	Update(ctx context.Context, loan *Loan) error
}

// NewLoanInput carries the client-supplied fields of a loan application.
type NewLoanInput struct {
	MemberID     string
	Amount       float64
	Purpose      string
	Term         int
	InterestRate float64 // 0 means "use the configured default"
}

// UpdateLoanInput fields at their zero value leave the stored value untouched.
type UpdateLoanInput struct {
	Amount       float64
	Purpose      string
	Term         int
	Status       string
	InterestRate float64
}

type LoanUseCase interface {
	CreateLoan(ctx context.Context, in NewLoanInput) (*Loan, error)
	GetAllLoans(ctx context.Context, filter LoanFilter) ([]LoanWithMember, int64, error)
	GetLoanByID(ctx context.Context, id string) (*LoanWithMember, error)
	UpdateLoan(ctx context.Context, id string, in UpdateLoanInput) (*Loan, error)
	ApproveLoan(ctx context.Context, id string) (*Loan, error)
	RejectLoan(ctx context.Context, id string) (*Loan, error)
	GetLoansForUser(ctx context.Context, userID string) ([]Loan, error)
}
