package rest

import (
	"context"
	"net/http"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

func (c *Client) SendOTP(ctx context.Context, phone string) (domain.OTPChallenge, error) {
	req := struct {
		Phone string `json:"phone"`
	}{Phone: phone}

	var challenge domain.OTPChallenge
	if err := c.do(ctx, http.MethodPost, "/delivery-partners/auth/send-otp", req, &challenge); err != nil {
		return domain.OTPChallenge{}, err
	}
	return challenge, nil
}

func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (domain.Session, error) {
	req := struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}{Phone: phone, OTP: otp}

	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/delivery-partners/auth/verify-otp", req, &session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}
