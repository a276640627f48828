package dto

import "github.com/anchordtai/Cooperative-Management-Software/domain"

type CreateTransactionRequest struct {
	MemberID    string  `json:"memberId" binding:"required,uuid"`
	Type        string  `json:"type" binding:"required,oneof=deposit withdrawal loan repayment"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=255"`
}

type CreateLoanRequest struct {
	MemberID     string  `json:"memberId" binding:"required,uuid"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Purpose      string  `json:"purpose" binding:"required,max=255"`
	Term         int     `json:"term" binding:"required,gt=0"`
	InterestRate float64 `json:"interestRate" binding:"omitempty,gte=0"`
}

func (r *CreateLoanRequest) ToInput() domain.NewLoanInput {
	return domain.NewLoanInput{
		MemberID:     r.MemberID,
		Amount:       r.Amount,
		Purpose:      r.Purpose,
		Term:         r.Term,
		InterestRate: r.InterestRate,
	}
}

type UpdateLoanRequest struct {
	Amount       float64 `json:"amount" binding:"omitempty,gt=0"`
	Purpose      string  `json:"purpose" binding:"omitempty,max=255"`
	Term         int     `json:"term" binding:"omitempty,gt=0"`
	Status       string  `json:"status" binding:"omitempty,oneof=pending approved rejected active completed"`
	InterestRate float64 `json:"interestRate" binding:"omitempty,gt=0"`
}

func (r *UpdateLoanRequest) ToInput() domain.UpdateLoanInput {
	return domain.UpdateLoanInput{
		Amount:       r.Amount,
		Purpose:      r.Purpose,
		Term:         r.Term,
		Status:       r.Status,
		InterestRate: r.InterestRate,
	}
}
