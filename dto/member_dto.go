package dto

import (
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
)

type CreateMemberRequest struct {
	UserID      string    `json:"userId" binding:"required,uuid"`
	FirstName   string    `json:"firstName" binding:"required,max=50"`
	LastName    string    `json:"lastName" binding:"required,max=50"`
	Phone       string    `json:"phone" binding:"required,phone"`
	Address     string    `json:"address" binding:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required"`
}

func (r *CreateMemberRequest) ToMember() *domain.Member {
	return &domain.Member{
		UserID:      r.UserID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: r.DateOfBirth,
	}
}

type UpdateMemberRequest struct {
	FirstName   string    `json:"firstName" binding:"required,max=50"`
	LastName    string    `json:"lastName" binding:"required,max=50"`
	Phone       string    `json:"phone" binding:"required,phone"`
	Address     string    `json:"address" binding:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"omitempty"`
	Status      string    `json:"status" binding:"omitempty,oneof=active inactive suspended"`
}

func (r *UpdateMemberRequest) ToMember(id string) *domain.Member {
	return &domain.Member{
		ID:          id,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: r.DateOfBirth,
		Status:      r.Status,
	}
}
