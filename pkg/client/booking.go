package client

import (
	"context"
	"fmt"
	"net/http"

	"reservations/pkg/model"
)

const bookingsPath = "/api/bookings"

// APIError is returned by BookingClient for any non-2xx answer.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookings api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) List(ctx context.Context) ([]*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, bookingsPath)
	if err != nil {
		return nil, err
	}

	var bookings []*model.Booking
	if err := decode(resp, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingClient) Get(ctx context.Context, id int64) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, bookingPath(id))
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, bookingsPath, booking)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) Update(ctx context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error) {
	resp, err := c.httpClient.PUT(ctx, bookingPath(id), update)
	if err != nil {
		return nil, err
	}
	return decodeBooking(resp)
}

func (c *BookingClient) Delete(ctx context.Context, id int64) (*model.DeleteConfirmation, error) {
	resp, err := c.httpClient.DELETE(ctx, bookingPath(id))
	if err != nil {
		return nil, err
	}

	var confirmation model.DeleteConfirmation
	if err := decode(resp, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func bookingPath(id int64) string {
	return fmt.Sprintf("%s/%d", bookingsPath, id)
}

func decodeBooking(resp *Response) (*model.Booking, error) {
	var booking model.Booking
	if err := decode(resp, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func decode(resp *Response, target any) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var body struct {
			Code string `json:"code"`
		}
		_ = resp.DecodeJSON(&body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       body.Code,
			Message:    GetErrorMessage(resp),
		}
	}

	if err := resp.DecodeJSON(target); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}
