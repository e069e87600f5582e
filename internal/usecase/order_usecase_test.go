package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/domain/pricing"
	mock_interfaces "orcamentos/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type orderMocks struct {
	orders  *mock_interfaces.MockIOrderRepository
	clients *mock_interfaces.MockIClientRepository
	catalog *mock_interfaces.MockICatalogRepository
	factors *mock_interfaces.MockIFactorRepository
}

func newOrderUseCaseWithMocks(t *testing.T) (*OrderUseCase, orderMocks) {
	ctrl := gomock.NewController(t)
	m := orderMocks{
		orders:  mock_interfaces.NewMockIOrderRepository(ctrl),
		clients: mock_interfaces.NewMockIClientRepository(ctrl),
		catalog: mock_interfaces.NewMockICatalogRepository(ctrl),
		factors: mock_interfaces.NewMockIFactorRepository(ctrl),
	}
	return NewOrderUseCase(m.orders, m.clients, m.catalog, m.factors), m
}

func testClient() entities.Client {
	return entities.Client{
		ID:            "client-1",
		Name:          "Prefeitura de Lavras",
		Document:      "11222333000181",
		City:          "Lavras",
		State:         "MG",
		ClientFactors: []entities.ClientFactor{{FactorID: "factor-1", SubItemID: "factor-1-subitem-2"}},
	}
}

func testService() entities.Service {
	return entities.Service{
		ID:        "svc-1",
		Code:      "1",
		Title:     "Serviço de Cobertura Aerofotogramétrica",
		UnitPrice: decimal.Zero,
		SubServices: []entities.SubService{{
			ID:             "sub-1",
			Code:           "1.1",
			Description:    "Área até 100 km²",
			Unit:           "km²",
			UnitPrice:      decimal.NewFromInt(150),
			ServiceID:      "svc-1",
			AllowedFactors: []string{"factor-1"},
		}},
	}
}

func testFactor() entities.Factor {
	return entities.Factor{
		ID:   "factor-1",
		Code: 1,
		SubItems: []entities.FactorSubItem{
			{ID: "factor-1-subitem-1", Code: 101, Description: "Plano", Value: decimal.NewFromInt(0)},
			{ID: "factor-1-subitem-2", Code: 102, Description: "Montanhoso", Value: decimal.NewFromInt(10)},
		},
	}
}

func passThroughCreate(code string) func(context.Context, entities.Order) (entities.Order, error) {
	return func(_ context.Context, o entities.Order) (entities.Order, error) {
		o.Code = code
		return o, nil
	}
}

func TestOrderUseCase_Create(t *testing.T) {
	t.Run("prices items and snapshots client and catalog", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)
		m.catalog.EXPECT().GetService(gomock.Any(), "svc-1").Return(testService(), nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Order{})).DoAndReturn(passThroughCreate("000001"))

		o, err := uc.Create(context.Background(), CreateOrderInput{
			ClientID: "client-1",
			Date:     time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC),
			Items:    []OrderItemInput{{ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.NewFromInt(10)}},
			Discount: decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Code != "000001" || o.Status != entities.OrderStatusDraft {
			t.Fatalf("unexpected order header: %+v", o)
		}
		if !o.Subtotal.Equal(decimal.NewFromInt(1500)) || !o.Total.Equal(decimal.NewFromInt(1400)) {
			t.Fatalf("unexpected totals subtotal=%s total=%s", o.Subtotal, o.Total)
		}
		if o.ClientName != "Prefeitura de Lavras" || o.ClientState != "MG" {
			t.Fatalf("client not snapshotted: %+v", o)
		}
		it := o.Items[0]
		if it.Code != "1.1" || it.Unit != "km²" || !it.UnitPrice.Equal(decimal.NewFromInt(150)) || it.Factor != nil {
			t.Fatalf("unexpected item snapshot: %+v", it)
		}
		if !o.Date.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("date must be a calendar day, got %s", o.Date)
		}
	})

	t.Run("submitted totals are recomputed with factor", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)
		m.catalog.EXPECT().GetService(gomock.Any(), "svc-1").Return(testService(), nil)
		m.factors.EXPECT().GetByID(gomock.Any(), "factor-1").Return(testFactor(), nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(passThroughCreate("000002"))

		o, err := uc.Create(context.Background(), CreateOrderInput{
			ClientID: "client-1",
			Items:    []OrderItemInput{{ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.NewFromInt(2), FactorID: "factor-1"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		it := o.Items[0]
		if !it.UnitPrice.Equal(decimal.NewFromInt(165)) || !it.Total.Equal(decimal.NewFromInt(330)) {
			t.Fatalf("unexpected factor pricing: unit=%s total=%s", it.UnitPrice, it.Total)
		}
		if it.Factor == nil || it.Factor.SubItemCode != 102 || !it.Factor.BaseUnitPrice.Equal(decimal.NewFromInt(150)) {
			t.Fatalf("factor not snapshotted: %+v", it.Factor)
		}
		if !o.Total.Equal(decimal.NewFromInt(330)) {
			t.Fatalf("unexpected total %s", o.Total)
		}
	})

	t.Run("factor not allowed for sub-service", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		svc := testService()
		svc.SubServices[0].AllowedFactors = nil
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)
		m.catalog.EXPECT().GetService(gomock.Any(), "svc-1").Return(svc, nil)
		m.factors.EXPECT().GetByID(gomock.Any(), "factor-1").Return(testFactor(), nil)

		_, err := uc.Create(context.Background(), CreateOrderInput{
			ClientID: "client-1",
			Items:    []OrderItemInput{{ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.NewFromInt(1), FactorID: "factor-1"}},
		})
		if !errors.Is(err, pricing.ErrFactorNotAllowed) {
			t.Fatalf("expected ErrFactorNotAllowed, got %v", err)
		}
	})

	t.Run("deleted client", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		c := testClient()
		c.Deleted = true
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(c, nil)

		_, err := uc.Create(context.Background(), CreateOrderInput{ClientID: "client-1"})
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("missing client id", func(t *testing.T) {
		uc, _ := newOrderUseCaseWithMocks(t)
		_, err := uc.Create(context.Background(), CreateOrderInput{ClientID: "  "})
		if !errors.Is(err, ErrOrderClientRequired) {
			t.Fatalf("expected ErrOrderClientRequired, got %v", err)
		}
	})

	t.Run("discount above subtotal", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)
		m.catalog.EXPECT().GetService(gomock.Any(), "svc-1").Return(testService(), nil)

		_, err := uc.Create(context.Background(), CreateOrderInput{
			ClientID: "client-1",
			Items:    []OrderItemInput{{ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.NewFromInt(1)}},
			Discount: decimal.NewFromInt(151),
		})
		if !errors.Is(err, pricing.ErrDiscountExceedsSubtotal) {
			t.Fatalf("expected ErrDiscountExceedsSubtotal, got %v", err)
		}
	})

	t.Run("unknown sub-service", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)
		m.catalog.EXPECT().GetService(gomock.Any(), "svc-1").Return(testService(), nil)

		_, err := uc.Create(context.Background(), CreateOrderInput{
			ClientID: "client-1",
			Items:    []OrderItemInput{{ServiceID: "svc-1", SubServiceID: "nope", Quantity: decimal.NewFromInt(1)}},
		})
		if !errors.Is(err, ErrSubServiceNotFound) {
			t.Fatalf("expected ErrSubServiceNotFound, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		uc, _ := newOrderUseCaseWithMocks(t)
		_, err := uc.Create(context.Background(), CreateOrderInput{ClientID: "client-1", Status: "aprovado"})
		if !errors.Is(err, ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})

	t.Run("repository conflict is returned", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.clients.EXPECT().GetByID(gomock.Any(), "client-1").Return(testClient(), nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("db"))

		_, err := uc.Create(context.Background(), CreateOrderInput{ClientID: "client-1"})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func storedOrder() entities.Order {
	return entities.Order{
		ID:         "order-1",
		Code:       "000007",
		ClientID:   "client-1",
		ClientName: "Prefeitura de Lavras",
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []entities.OrderItem{{
			ID:           "item-1",
			ServiceID:    "svc-1",
			SubServiceID: "sub-1",
			Code:         "1.1",
			Description:  "Descrição antiga",
			Unit:         "km²",
			Quantity:     decimal.NewFromInt(10),
			UnitPrice:    decimal.NewFromInt(120),
			Total:        decimal.NewFromInt(1200),
		}},
		Subtotal: decimal.NewFromInt(1200),
		Total:    decimal.NewFromInt(1200),
		Status:   entities.OrderStatusDraft,
	}
}

func TestOrderUseCase_Update(t *testing.T) {
	t.Run("existing items keep snapshot and new items use catalog", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(storedOrder(), nil)
		m.catalog.EXPECT().GetService(gomock.Any(), "svc-1").Return(testService(), nil)
		m.orders.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil },
		)

		items := []OrderItemInput{
			{ID: "item-1", ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.NewFromInt(5)},
			{ServiceID: "svc-1", SubServiceID: "sub-1", Quantity: decimal.NewFromInt(1)},
		}
		discount := decimal.NewFromInt(50)
		o, err := uc.Update(context.Background(), "order-1", UpdateOrderInput{Items: &items, Discount: &discount})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(o.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(o.Items))
		}
		if !o.Items[0].UnitPrice.Equal(decimal.NewFromInt(120)) || o.Items[0].Description != "Descrição antiga" {
			t.Fatalf("existing item lost its snapshot: %+v", o.Items[0])
		}
		if !o.Items[1].UnitPrice.Equal(decimal.NewFromInt(150)) {
			t.Fatalf("new item not priced from catalog: %+v", o.Items[1])
		}
		// 5*120 + 1*150 - 50
		if !o.Subtotal.Equal(decimal.NewFromInt(750)) || !o.Total.Equal(decimal.NewFromInt(700)) {
			t.Fatalf("unexpected totals subtotal=%s total=%s", o.Subtotal, o.Total)
		}
		if o.Code != "000007" {
			t.Fatalf("code must not change, got %s", o.Code)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(storedOrder(), nil)

		items := []OrderItemInput{{ID: "item-1", Quantity: decimal.NewFromInt(-1)}}
		_, err := uc.Update(context.Background(), "order-1", UpdateOrderInput{Items: &items})
		if !errors.Is(err, pricing.ErrNegativeQuantity) {
			t.Fatalf("expected ErrNegativeQuantity, got %v", err)
		}
	})

	t.Run("existing item sent twice", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(storedOrder(), nil)
		m.orders.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		items := []OrderItemInput{
			{ID: "item-1", Quantity: decimal.NewFromInt(5)},
			{ID: "item-1", Quantity: decimal.NewFromInt(5)},
		}
		_, err := uc.Update(context.Background(), "order-1", UpdateOrderInput{Items: &items})
		if !errors.Is(err, ErrDuplicateOrderItem) {
			t.Fatalf("expected ErrDuplicateOrderItem, got %v", err)
		}
	})

	t.Run("deleted order", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		o := storedOrder()
		o.Deleted = true
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(o, nil)

		_, err := uc.Update(context.Background(), "order-1", UpdateOrderInput{})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("client change re-snapshots", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		other := testClient()
		other.ID, other.Name, other.State = "client-2", "Prefeitura de Perdões", "SP"
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(storedOrder(), nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "client-2").Return(other, nil)
		m.orders.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil },
		)

		id := "client-2"
		o, err := uc.Update(context.Background(), "order-1", UpdateOrderInput{ClientID: &id})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ClientName != "Prefeitura de Perdões" || o.ClientState != "SP" {
			t.Fatalf("client not re-snapshotted: %+v", o)
		}
	})
}

func TestOrderUseCase_StatusAndDelete(t *testing.T) {
	t.Run("update status", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(storedOrder(), nil)
		approved := storedOrder()
		approved.Status = entities.OrderStatusApproved
		m.orders.EXPECT().UpdateStatus(gomock.Any(), "order-1", entities.OrderStatusApproved).Return(approved, nil)

		o, err := uc.UpdateStatus(context.Background(), "order-1", entities.OrderStatusApproved)
		if err != nil || o.Status != entities.OrderStatusApproved {
			t.Fatalf("unexpected result: %+v %v", o, err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		uc, _ := newOrderUseCaseWithMocks(t)
		_, err := uc.UpdateStatus(context.Background(), "order-1", "x")
		if !errors.Is(err, ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})

	t.Run("delete not found", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().SoftDelete(gomock.Any(), "order-x").Return(false, nil)
		if err := uc.Delete(context.Background(), "order-x"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("delete all", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().SoftDeleteAll(gomock.Any()).Return(4, nil)
		n, err := uc.DeleteAll(context.Background())
		if err != nil || n != 4 {
			t.Fatalf("unexpected result: %d %v", n, err)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		uc, m := newOrderUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "order-x").Return(entities.Order{}, nil)
		if _, err := uc.GetByID(context.Background(), "order-x"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}
