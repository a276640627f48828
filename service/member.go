package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type memberService struct {
	repo  domain.MemberRepository
	title cases.Caser
}

func NewMemberService(repo domain.MemberRepository) domain.MemberUseCase {
	return &memberService{
		repo:  repo,
		title: cases.Title(language.English),
	}
}

func (s *memberService) CreateMember(ctx context.Context, member *domain.Member) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}

	member.MembershipNumber = fmt.Sprintf("COOP-%05d", count+1)
	member.FirstName = s.title.String(member.FirstName)
	member.LastName = s.title.String(member.LastName)
	member.Status = domain.MemberStatusActive
	member.ShareCapital = 0
	member.Savings = 0
	if member.JoinDate.IsZero() {
		member.JoinDate = time.Now()
	}

	return s.repo.Create(ctx, member)
}

func (s *memberService) GetAllMembers(ctx context.Context) ([]domain.Member, error) {
	return s.repo.GetAll(ctx)
}

func (s *memberService) GetMemberByID(ctx context.Context, id string) (*domain.Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *memberService) UpdateMember(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	existing, err := s.repo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	existing.FirstName = member.FirstName
	existing.LastName = member.LastName
	existing.Phone = member.Phone
	existing.Address = member.Address
	if !member.DateOfBirth.IsZero() {
		existing.DateOfBirth = member.DateOfBirth
	}
	if member.Status != "" {
		existing.Status = member.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *memberService) DeleteMember(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
