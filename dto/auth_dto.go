package dto

import "github.com/anchordtai/Cooperative-Management-Software/domain"

type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8,max=64"`
	Phone     string  `json:"phone" binding:"required,phone"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin member staff"`
	FirstName *string `json:"firstName" binding:"omitempty,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,max=50"`
}

func (r *RegisterRequest) ToInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Role:      r.Role,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	TwoFAMethod string `json:"twoFAMethod" binding:"omitempty,oneof=email sms"`
}

type Verify2FARequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type VerifyPhoneRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type ResendEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResendSMSRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}
