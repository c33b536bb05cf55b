package service

import (
	"context"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
)

// ProfileService manages the singleton business profile
type ProfileService interface {
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context) (*dto.ProfileResponse, error)
}

type profileService struct {
	ServiceParams
}

func NewProfileService(params ServiceParams) ProfileService {
	return &profileService{ServiceParams: params}
}

func (s *profileService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProfile()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// keep the original creation time when replacing an existing profile
	if existing, err := s.ProfileRepo.Get(ctx); err == nil {
		p.CreatedAt = existing.CreatedAt
	}

	if err := s.ProfileRepo.Put(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("business profile updated", "business_name", p.BusinessName)
	return dto.NewProfileResponse(p), nil
}

func (s *profileService) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	p, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(p), nil
}
