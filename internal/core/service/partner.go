package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/port"
)

// PartnerService covers the profile, onboarding and reporting surface of
// the partner API. It holds no state beyond the last known online flag.
type PartnerService struct {
	api port.PartnerAPI
	log *zap.Logger
}

func NewPartnerService(api port.PartnerAPI, log *zap.Logger) *PartnerService {
	return &PartnerService{api: api, log: log}
}

func (s *PartnerService) Profile(ctx context.Context) (domain.Partner, error) {
	return s.api.Profile(ctx)
}

func (s *PartnerService) UpdateProfile(ctx context.Context, partner domain.Partner) (domain.Partner, error) {
	updated, err := s.api.UpdateProfile(ctx, partner)
	if err != nil {
		s.log.Error("update profile failed", zap.Error(err))
		return domain.Partner{}, err
	}
	return updated, nil
}

func (s *PartnerService) UploadDocuments(ctx context.Context, docs domain.Documents) error {
	if err := s.api.UploadDocuments(ctx, docs); err != nil {
		s.log.Error("upload documents failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *PartnerService) SubmitBankDetails(ctx context.Context, details domain.BankDetails) error {
	if err := s.api.SubmitBankDetails(ctx, details); err != nil {
		s.log.Error("submit bank details failed", zap.Error(err))
		return err
	}
	return nil
}

// SetOnline toggles shift status on the backend and returns the state the
// backend settled on, which may differ from the requested one.
func (s *PartnerService) SetOnline(ctx context.Context, online bool) (bool, error) {
	active, err := s.api.ToggleStatus(ctx, online)
	if err != nil {
		s.log.Error("toggle status failed", zap.Bool("requested", online), zap.Error(err))
		return false, err
	}
	s.log.Info("online status changed", zap.Bool("online", active))
	return active, nil
}

func (s *PartnerService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	return s.api.Dashboard(ctx)
}

func (s *PartnerService) Earnings(ctx context.Context, period domain.EarningsPeriod) (domain.EarningsSummary, error) {
	return s.api.Earnings(ctx, period)
}

func (s *PartnerService) Notifications(ctx context.Context, page, limit int) ([]domain.Notification, error) {
	return s.api.Notifications(ctx, page, limit)
}
