package request

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orcamentos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}
	if got, err := ParseDate("  "); err != nil || !got.IsZero() {
		t.Fatalf("expected zero date, got %v %v", got, err)
	}
	if _, err := ParseDate("07/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCreateOrderRequest_ToInput(t *testing.T) {
	r := CreateOrderRequest{
		ClientID: "client-1",
		Date:     "2025-01-02",
		Discount: decimal.RequireFromString("10.5"),
		Status:   "pending",
		Items:    []OrderItemRequest{{ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.RequireFromString("2.25"), FactorID: "factor-1"}},
	}
	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Status != entities.OrderStatusPending || in.Discount.String() != "10.5" {
		t.Fatalf("unexpected header: %+v", in)
	}
	if len(in.Items) != 1 || in.Items[0].Quantity.String() != "2.25" || in.Items[0].FactorID != "factor-1" {
		t.Fatalf("unexpected items: %+v", in.Items)
	}

	noDate, err := CreateOrderRequest{ClientID: "client-1"}.ToInput()
	if err != nil || noDate.Date.IsZero() || noDate.Date.Hour() != 0 {
		t.Fatalf("expected today at midnight, got %v %v", noDate.Date, err)
	}
}

func TestCreateOrderRequest_DecodesExactAmounts(t *testing.T) {
	var r CreateOrderRequest
	body := `{"client_id":"client-1","discount":0.1,"items":[{"service_id":"svc-1","quantity":1.005}]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Discount.String() != "0.1" || in.Items[0].Quantity.String() != "1.005" {
		t.Fatalf("unexpected amounts discount=%s quantity=%s", in.Discount, in.Items[0].Quantity)
	}
}

func TestUpdateOrderRequest_ToInput(t *testing.T) {
	empty := ""
	if _, err := (UpdateOrderRequest{Date: &empty}).ToInput(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	discount := decimal.Zero
	status := "approved"
	items := []OrderItemRequest{{ID: "item-1", ServiceID: "svc-1", Quantity: decimal.NewFromInt(3)}}
	in, err := UpdateOrderRequest{Discount: &discount, Status: &status, Items: &items}.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Discount == nil || !in.Discount.IsZero() || *in.Status != entities.OrderStatusApproved {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Items == nil || (*in.Items)[0].ID != "item-1" || in.ClientID != nil || in.Date != nil {
		t.Fatalf("unexpected merge fields: %+v", in)
	}
}

func TestUpdateUserRequest_ToInput(t *testing.T) {
	level := "admin"
	in := UpdateUserRequest{AccessLevel: &level, NewPassword: "secret1"}.ToInput()
	if in.AccessLevel == nil || *in.AccessLevel != entities.AccessLevelAdmin || in.Status != nil {
		t.Fatalf("unexpected input: %+v", in)
	}
}
