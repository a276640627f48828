package service

import (
	"context"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
)

type transactionService struct {
	transactions domain.TransactionRepository
	members      domain.MemberRepository
}

func NewTransactionService(transactions domain.TransactionRepository, members domain.MemberRepository) domain.TransactionUseCase {
	return &transactionService{transactions: transactions, members: members}
}

func (s *transactionService) CreateTransaction(ctx context.Context, memberID, txType string, amount float64, description string) (*domain.Transaction, error) {
	if memberID == "" || txType == "" || amount <= 0 {
		return nil, &domain.ValidationError{Message: "memberId, type, and amount are required"}
	}

	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		MemberID:    memberID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Status:      domain.TransactionStatusCompleted,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) GetAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionWithMember, int64, error) {
	return s.transactions.List(ctx, filter)
}

func (s *transactionService) GetTransactionByID(ctx context.Context, id string) (*domain.TransactionWithMember, error) {
	return s.transactions.GetByIDWithMember(ctx, id)
}
