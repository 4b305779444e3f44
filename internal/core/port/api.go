package port

import (
	"context"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

type OrderAPI interface {
	AvailableOrders(ctx context.Context) ([]domain.OrderPayload, error)
	AssignedOrders(ctx context.Context) ([]domain.OrderPayload, error)
	ActiveOrder(ctx context.Context) (*domain.OrderPayload, error)
	OrderHistory(ctx context.Context, page, limit int) ([]domain.OrderPayload, error)
	AcceptOrder(ctx context.Context, orderID string) (*domain.OrderPayload, error)
	RejectOrder(ctx context.Context, orderID string) error
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
	ReportLocation(ctx context.Context, latitude, longitude float64) error
}

type AuthAPI interface {
	SendOTP(ctx context.Context, phone string) (domain.OTPChallenge, error)
	VerifyOTP(ctx context.Context, phone, otp string) (domain.Session, error)
}

type PartnerAPI interface {
	Profile(ctx context.Context) (domain.Partner, error)
	UpdateProfile(ctx context.Context, partner domain.Partner) (domain.Partner, error)
	UploadDocuments(ctx context.Context, docs domain.Documents) error
	SubmitBankDetails(ctx context.Context, details domain.BankDetails) error
	ToggleStatus(ctx context.Context, active bool) (bool, error)
	Dashboard(ctx context.Context) (domain.Dashboard, error)
	Earnings(ctx context.Context, period domain.EarningsPeriod) (domain.EarningsSummary, error)
	Notifications(ctx context.Context, page, limit int) ([]domain.Notification, error)
}
