package service

import (
	"context"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
)

type reportService struct {
	repo domain.ReportRepository
}

func NewReportService(repo domain.ReportRepository) domain.ReportUseCase {
	return &reportService{repo: repo}
}

func (s *reportService) GetSummary(ctx context.Context) (*domain.Summary, error) {
	return s.repo.Summary(ctx)
}
