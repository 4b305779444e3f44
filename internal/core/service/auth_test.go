package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) SendOTP(ctx context.Context, phone string) (domain.OTPChallenge, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(domain.OTPChallenge), args.Error(1)
}

func (m *MockAuthAPI) VerifyOTP(ctx context.Context, phone, otp string) (domain.Session, error) {
	args := m.Called(ctx, phone, otp)
	return args.Get(0).(domain.Session), args.Error(1)
}

type memSessionStore struct {
	token string
}

func (s *memSessionStore) Token(ctx context.Context) (string, error) { return s.token, nil }
func (s *memSessionStore) Save(ctx context.Context, token string) error {
	s.token = token
	return nil
}
func (s *memSessionStore) Clear(ctx context.Context) error {
	s.token = ""
	return nil
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare ten digits", "9876543210", "+919876543210"},
		{"already E.164", "+919876543210", "+919876543210"},
		{"twelve digits with country code", "919876543210", "+919876543210"},
		{"leading zero national format", "09876543210", "+919876543210"},
		{"spaces and dashes stripped", "98765-43210 ", "+919876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}

func TestAuthService_VerifyOTPPersistsToken(t *testing.T) {
	api := new(MockAuthAPI)
	sessions := &memSessionStore{}
	svc := NewAuthService(api, sessions, zap.NewNop())

	api.On("VerifyOTP", mock.Anything, "+919876543210", "1234").Return(domain.Session{
		DeliveryPartnerID: "DP1",
		Token:             "tok-abc",
		OnboardingStatus:  domain.OnboardingCompleted,
	}, nil)

	session, err := svc.VerifyOTP(context.Background(), "9876543210", "1234")

	assert.NoError(t, err)
	assert.Equal(t, "DP1", session.DeliveryPartnerID)
	assert.Equal(t, "tok-abc", sessions.token)
	api.AssertExpectations(t)
}

func TestAuthService_SessionValid(t *testing.T) {
	makeToken := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "DP1",
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		assert.NoError(t, err)
		return signed
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"no token stored", "", false},
		{"valid unexpired token", makeToken(time.Now().Add(time.Hour)), true},
		{"expired token", makeToken(time.Now().Add(-time.Hour)), false},
		{"not a jwt", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(nil, &memSessionStore{token: tt.token}, zap.NewNop())
			assert.Equal(t, tt.want, svc.SessionValid(context.Background()))
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	sessions := &memSessionStore{token: "tok"}
	svc := NewAuthService(nil, sessions, zap.NewNop())

	assert.NoError(t, svc.Logout(context.Background()))
	assert.Empty(t, sessions.token)
}
