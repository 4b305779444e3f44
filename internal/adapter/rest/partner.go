package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

func (c *Client) Profile(ctx context.Context) (domain.Partner, error) {
	var partner domain.Partner
	if err := c.get(ctx, "/delivery-partners/profile", &partner); err != nil {
		return domain.Partner{}, err
	}
	return partner, nil
}

func (c *Client) UpdateProfile(ctx context.Context, partner domain.Partner) (domain.Partner, error) {
	var updated domain.Partner
	if err := c.do(ctx, http.MethodPut, "/delivery-partners/profile", partner, &updated); err != nil {
		return domain.Partner{}, err
	}
	return updated, nil
}

func (c *Client) UploadDocuments(ctx context.Context, docs domain.Documents) error {
	return c.do(ctx, http.MethodPost, "/delivery-partners/documents/upload", docs, nil)
}

func (c *Client) SubmitBankDetails(ctx context.Context, details domain.BankDetails) error {
	return c.do(ctx, http.MethodPost, "/delivery-partners/bank-details", details, nil)
}

func (c *Client) ToggleStatus(ctx context.Context, active bool) (bool, error) {
	req := struct {
		IsActive bool `json:"isActive"`
	}{IsActive: active}

	var resp struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.do(ctx, http.MethodPost, "/delivery-partners/toggle-status", req, &resp); err != nil {
		return false, err
	}
	return resp.IsActive, nil
}

func (c *Client) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	var dash domain.Dashboard
	if err := c.get(ctx, "/delivery-partners/dashboard", &dash); err != nil {
		return domain.Dashboard{}, err
	}
	return dash, nil
}

func (c *Client) Earnings(ctx context.Context, period domain.EarningsPeriod) (domain.EarningsSummary, error) {
	path := fmt.Sprintf("/delivery-partners/earnings?period=%s", period)
	var summary domain.EarningsSummary
	if err := c.get(ctx, path, &summary); err != nil {
		return domain.EarningsSummary{}, err
	}
	return summary, nil
}

func (c *Client) Notifications(ctx context.Context, page, limit int) ([]domain.Notification, error) {
	path := fmt.Sprintf("/notifications/user?page=%d&limit=%d", page, limit)
	var notes []domain.Notification
	if err := c.get(ctx, path, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
