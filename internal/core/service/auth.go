package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/port"
)

// AuthService drives the OTP login flow and owns the persisted session.
type AuthService struct {
	api      port.AuthAPI
	sessions port.SessionStore
	log      *zap.Logger
}

func NewAuthService(api port.AuthAPI, sessions port.SessionStore, log *zap.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, log: log}
}

func (s *AuthService) SendOTP(ctx context.Context, phone string) (domain.OTPChallenge, error) {
	challenge, err := s.api.SendOTP(ctx, NormalizePhone(phone))
	if err != nil {
		s.log.Error("send otp failed", zap.Error(err))
		return domain.OTPChallenge{}, err
	}
	return challenge, nil
}

// VerifyOTP exchanges the code for a session and persists its token.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, otp string) (domain.Session, error) {
	session, err := s.api.VerifyOTP(ctx, NormalizePhone(phone), otp)
	if err != nil {
		s.log.Error("verify otp failed", zap.Error(err))
		return domain.Session{}, err
	}
	if session.Token != "" {
		if err := s.sessions.Save(ctx, session.Token); err != nil {
			s.log.Error("persist session token failed", zap.Error(err))
			return domain.Session{}, err
		}
	}
	s.log.Info("partner authenticated", zap.String("partner_id", session.DeliveryPartnerID))
	return session, nil
}

// SessionValid reports whether a stored token exists and has not expired.
// The claims are read without signature verification: the client cannot
// verify anyway and only needs the expiry to avoid a doomed round trip.
func (s *AuthService) SessionValid(ctx context.Context) bool {
	token, err := s.sessions.Token(ctx)
	if err != nil || token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// NormalizePhone converts user-entered phone numbers to E.164, defaulting
// to the +91 country code: bare 10-digit numbers and 0-prefixed national
// numbers are prefixed, 12-digit numbers already carrying 91 pass through.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "+")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()

	switch {
	case len(phone) == 10:
		phone = "91" + phone
	case len(phone) == 12 && strings.HasPrefix(phone, "91"):
		// already carries the country code
	case strings.HasPrefix(phone, "0"):
		phone = "91" + phone[1:]
	}
	return "+" + phone
}
