package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

func (c *Client) AvailableOrders(ctx context.Context) ([]domain.OrderPayload, error) {
	var payloads []domain.OrderPayload
	if err := c.get(ctx, "/delivery-partners/orders/available", &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

func (c *Client) AssignedOrders(ctx context.Context) ([]domain.OrderPayload, error) {
	var payloads []domain.OrderPayload
	if err := c.get(ctx, "/delivery-partners/orders/assigned", &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

func (c *Client) ActiveOrder(ctx context.Context) (*domain.OrderPayload, error) {
	var payload domain.OrderPayload
	if err := c.get(ctx, "/delivery-partners/orders/active", &payload); err != nil {
		return nil, err
	}
	if payload.MongoID == "" && payload.ID == "" {
		return nil, nil
	}
	return &payload, nil
}

func (c *Client) OrderHistory(ctx context.Context, page, limit int) ([]domain.OrderPayload, error) {
	path := fmt.Sprintf("/delivery-partners/orders/history?page=%d&limit=%d", page, limit)
	var payloads []domain.OrderPayload
	if err := c.get(ctx, path, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

func (c *Client) AcceptOrder(ctx context.Context, orderID string) (*domain.OrderPayload, error) {
	path := fmt.Sprintf("/delivery-partners/orders/%s/accept", orderID)
	var payload domain.OrderPayload
	if err := c.do(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) RejectOrder(ctx context.Context, orderID string) error {
	path := fmt.Sprintf("/delivery-partners/orders/%s/reject", orderID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	req := struct {
		Status domain.OrderStatus `json:"status"`
	}{Status: status}
	path := fmt.Sprintf("/delivery-partners/orders/%s/status", orderID)
	return c.do(ctx, http.MethodPatch, path, req, nil)
}

func (c *Client) ReportLocation(ctx context.Context, latitude, longitude float64) error {
	req := struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{Latitude: latitude, Longitude: longitude}
	return c.do(ctx, http.MethodPost, "/delivery-partners/location", req, nil)
}
