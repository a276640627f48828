package dto

import "github.com/anchordtai/Cooperative-Management-Software/domain"

// UpdateSettingsRequest uses pointers so omitted fields can be told apart
// from zero values and left unchanged.
type UpdateSettingsRequest struct {
	CooperativeName     *string  `json:"cooperativeName" binding:"omitempty,max=100"`
	Email               *string  `json:"email" binding:"omitempty,email"`
	Phone               *string  `json:"phone" binding:"omitempty,phone"`
	Address             *string  `json:"address" binding:"omitempty,max=255"`
	Currency            *string  `json:"currency" binding:"omitempty,len=3"`
	InterestRate        *float64 `json:"interestRate" binding:"omitempty,gte=0"`
	MinimumSavings      *float64 `json:"minimumSavings" binding:"omitempty,gte=0"`
	EnableNotifications *bool    `json:"enableNotifications"`
	EnableAutoApproval  *bool    `json:"enableAutoApproval"`
	EnableTwoFactor     *bool    `json:"enableTwoFactor"`
}

func (r *UpdateSettingsRequest) ToInput() domain.UpdateSettingsInput {
	return domain.UpdateSettingsInput{
		CooperativeName:     r.CooperativeName,
		Email:               r.Email,
		Phone:               r.Phone,
		Address:             r.Address,
		Currency:            r.Currency,
		InterestRate:        r.InterestRate,
		MinimumSavings:      r.MinimumSavings,
		EnableNotifications: r.EnableNotifications,
		EnableAutoApproval:  r.EnableAutoApproval,
		EnableTwoFactor:     r.EnableTwoFactor,
	}
}
