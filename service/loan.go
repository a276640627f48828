package service

import (
	"context"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
)

type loanService struct {
	loans    domain.LoanRepository
	members  domain.MemberRepository
	settings domain.SettingsRepository
}

func NewLoanService(loans domain.LoanRepository, members domain.MemberRepository, settings domain.SettingsRepository) domain.LoanUseCase {
	return &loanService{loans: loans, members: members, settings: settings}
}

func (s *loanService) CreateLoan(ctx context.Context, in domain.NewLoanInput) (*domain.Loan, error) {
	if in.MemberID == "" || in.Amount <= 0 || in.Purpose == "" || in.Term <= 0 {
		return nil, &domain.ValidationError{Message: "memberId, amount, purpose, and term are required"}
	}

	if _, err := s.members.GetByID(ctx, in.MemberID); err != nil {
		return nil, err
	}

	rate := in.InterestRate
	if rate == 0 {
		rate = s.defaultInterestRate(ctx)
	}

	now := time.Now()
	loan := &domain.Loan{
		MemberID:         in.MemberID,
		Amount:           in.Amount,
		Purpose:          in.Purpose,
		InterestRate:     rate,
		Term:             in.Term,
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, in.Term*30),
		Status:           domain.LoanStatusPending,
		RemainingBalance: in.Amount,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) GetAllLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanWithMember, int64, error) {
	return s.loans.List(ctx, filter)
}

func (s *loanService) GetLoanByID(ctx context.Context, id string) (*domain.LoanWithMember, error) {
	return s.loans.GetByIDWithMember(ctx, id)
}

func (s *loanService) UpdateLoan(ctx context.Context, id string, in domain.UpdateLoanInput) (*domain.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Amount > 0 {
		loan.Amount = in.Amount
	}
	if in.Purpose != "" {
		loan.Purpose = in.Purpose
	}
	if in.Term > 0 {
		loan.Term = in.Term
	}
	if in.Status != "" {
		loan.Status = in.Status
	}
	if in.InterestRate > 0 {
		loan.InterestRate = in.InterestRate
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ApproveLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return s.settle(ctx, id, domain.LoanStatusApproved, true)
}

func (s *loanService) RejectLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return s.settle(ctx, id, domain.LoanStatusRejected, false)
}

// settle transitions a pending loan to a decision. Approval restarts the
// clock so the term runs from the decision, not the application.
func (s *loanService) settle(ctx context.Context, id, status string, resetStart bool) (*domain.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanStatusPending {
		return nil, domain.ErrLoanNotPending
	}

	loan.Status = status
	if resetStart {
		loan.StartDate = time.Now()
	}
	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) GetLoansForUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	member, err := s.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loans.ListByMemberID(ctx, member.ID)
}

func (s *loanService) defaultInterestRate(ctx context.Context) float64 {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 5.0
	}
	return settings.InterestRate
}
