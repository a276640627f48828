package service

import (
	"context"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
)

type settingsService struct {
	repo domain.SettingsRepository
}

func NewSettingsService(repo domain.SettingsRepository) domain.SettingsUseCase {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.repo.Get(ctx)
}

// UpdateSettings merges the supplied fields into the stored record; absent
// fields keep their previous values.
func (s *settingsService) UpdateSettings(ctx context.Context, in domain.UpdateSettingsInput) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.CooperativeName != nil {
		settings.CooperativeName = *in.CooperativeName
	}
	if in.Email != nil {
		settings.Email = *in.Email
	}
	if in.Phone != nil {
		settings.Phone = *in.Phone
	}
	if in.Address != nil {
		settings.Address = *in.Address
	}
	if in.Currency != nil {
		settings.Currency = *in.Currency
	}
	if in.InterestRate != nil {
		settings.InterestRate = *in.InterestRate
	}
	if in.MinimumSavings != nil {
		settings.MinimumSavings = *in.MinimumSavings
	}
	if in.EnableNotifications != nil {
		settings.EnableNotifications = *in.EnableNotifications
	}
	if in.EnableAutoApproval != nil {
		settings.EnableAutoApproval = *in.EnableAutoApproval
	}
	if in.EnableTwoFactor != nil {
		settings.EnableTwoFactor = *in.EnableTwoFactor
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
