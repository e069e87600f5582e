package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/domain/pricing"
	"orcamentos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrOrderClientRequired = errors.New("order client is required")
	ErrServiceNotFound     = errors.New("service not found")
	ErrSubServiceNotFound  = errors.New("sub-service not found")
	ErrFactorRequiresSub   = errors.New("factor can only be applied to a sub-service")
	ErrDuplicateOrderItem  = errors.New("order item sent more than once")
)

// OrderItemInput describes one line of an order request. ID is set only when
// the line already exists on the order being updated.
type OrderItemInput struct {
	ID           string
	ServiceID    string
	SubServiceID string
	Quantity     decimal.Decimal
	Observations string
	FactorID     string
}

type CreateOrderInput struct {
	ClientID     string
	Date         time.Time
	Items        []OrderItemInput
	Discount     decimal.Decimal
	Status       entities.OrderStatus
	Observations string
}

// UpdateOrderInput merges into an existing order: nil fields are kept.
type UpdateOrderInput struct {
	ClientID     *string
	Date         *time.Time
	Items        *[]OrderItemInput
	Discount     *decimal.Decimal
	Status       *entities.OrderStatus
	Observations *string
}

// IOrderUseCase exposes order (orçamento) operations.
//
// Prices are always recomputed here; totals sent by callers are ignored.

type IOrderUseCase interface {
	Create(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	Update(ctx context.Context, id string, in UpdateOrderInput) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
}

type OrderUseCase struct {
	orders  interfaces.IOrderRepository
	clients interfaces.IClientRepository
	catalog interfaces.ICatalogRepository
	factors interfaces.IFactorRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	orders interfaces.IOrderRepository,
	clients interfaces.IClientRepository,
	catalog interfaces.ICatalogRepository,
	factors interfaces.IFactorRepository,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, clients: clients, catalog: catalog, factors: factors}
}

func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	log.Printf("[order][usecase] create start client_id=%q items=%d", in.ClientID, len(in.Items))

	status := in.Status
	if status == "" {
		status = entities.OrderStatusDraft
	}
	if !status.Valid() {
		return entities.Order{}, ErrInvalidOrderStatus
	}

	client, err := u.activeClient(ctx, in.ClientID)
	if err != nil {
		return entities.Order{}, err
	}

	sheet, err := pricing.NewSheet(nil, in.Discount)
	if err != nil {
		return entities.Order{}, err
	}
	resolver := u.newItemResolver(client)
	for _, itemIn := range in.Items {
		item, err := resolver.resolve(ctx, itemIn)
		if err != nil {
			return entities.Order{}, err
		}
		if err := sheet.Add(item); err != nil {
			return entities.Order{}, err
		}
	}
	items, totals, err := sheet.Totals()
	if err != nil {
		return entities.Order{}, err
	}

	now := time.Now().UTC()
	o := entities.Order{
		ID:           uuid.NewString(),
		Date:         calendarDay(in.Date, now),
		Items:        items,
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Total:        totals.Total,
		Status:       status,
		Observations: strings.TrimSpace(in.Observations),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	snapshotClient(&o, client)

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		log.Printf("[order][usecase] create failed client_id=%s err=%v", client.ID, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] create success id=%s code=%s total=%s", created.ID, created.Code, created.Total.StringFixed(pricing.MoneyPlaces))
	return created, nil
}

func (u *OrderUseCase) Update(ctx context.Context, id string, in UpdateOrderInput) (entities.Order, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.Deleted {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] update start id=%s code=%s", o.ID, o.Code)

	var client entities.Client
	if in.ClientID != nil && strings.TrimSpace(*in.ClientID) != o.ClientID {
		client, err = u.activeClient(ctx, *in.ClientID)
		if err != nil {
			return entities.Order{}, err
		}
		snapshotClient(&o, client)
	}
	if in.Date != nil {
		o.Date = calendarDay(*in.Date, o.Date)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return entities.Order{}, ErrInvalidOrderStatus
		}
		o.Status = *in.Status
	}
	if in.Observations != nil {
		o.Observations = strings.TrimSpace(*in.Observations)
	}
	discount := o.Discount
	if in.Discount != nil {
		discount = *in.Discount
	}

	items := o.Items
	if in.Items != nil {
		if client.ID == "" && needsClient(*in.Items, o.Items) {
			client, err = u.clientSnapshotSource(ctx, o)
			if err != nil {
				return entities.Order{}, err
			}
		}
		items, err = u.mergeItems(ctx, client, o.Items, *in.Items)
		if err != nil {
			return entities.Order{}, err
		}
	}

	sheet, err := pricing.NewSheet(items, discount)
	if err != nil {
		return entities.Order{}, err
	}
	recalculated, totals, err := sheet.Totals()
	if err != nil {
		return entities.Order{}, err
	}
	o.Items = recalculated
	o.Subtotal, o.Discount, o.Total = totals.Subtotal, totals.Discount, totals.Total

	updated, err := u.orders.Update(ctx, o)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] update success id=%s total=%s", updated.ID, updated.Total.StringFixed(pricing.MoneyPlaces))
	return updated, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if !status.Valid() {
		return entities.Order{}, ErrInvalidOrderStatus
	}

	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if current.Deleted {
		return entities.Order{}, ErrOrderNotFound
	}

	updated, err := u.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] status updated id=%s from=%s to=%s", id, current.Status, status)
	return updated, nil
}

func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}
	ok, err := u.orders.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	log.Printf("[order][usecase] soft deleted id=%s", id)
	return nil
}

func (u *OrderUseCase) DeleteAll(ctx context.Context) (int, error) {
	n, err := u.orders.SoftDeleteAll(ctx)
	if err != nil {
		log.Printf("[order][usecase] delete all failed after=%d err=%v", n, err)
		return n, err
	}
	log.Printf("[order][usecase] delete all success count=%d", n)
	return n, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) List(ctx context.Context) ([]entities.Order, error) {
	return u.orders.List(ctx)
}

func (u *OrderUseCase) activeClient(ctx context.Context, clientID string) (entities.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return entities.Client{}, ErrOrderClientRequired
	}
	c, err := u.clients.GetByID(ctx, clientID)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" || c.Deleted {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

// clientSnapshotSource loads the order's client to price new factor items.
// A client deleted after the order was created can still be used.
func (u *OrderUseCase) clientSnapshotSource(ctx context.Context, o entities.Order) (entities.Client, error) {
	c, err := u.clients.GetByID(ctx, o.ClientID)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

// mergeItems keeps the catalog snapshot of lines that already exist on the
// order (only quantity and observations change) and resolves new lines
// against the catalog. An existing line may appear only once.
func (u *OrderUseCase) mergeItems(ctx context.Context, client entities.Client, existing []entities.OrderItem, in []OrderItemInput) ([]entities.OrderItem, error) {
	byID := make(map[string]entities.OrderItem, len(existing))
	for _, it := range existing {
		byID[it.ID] = it
	}

	resolver := u.newItemResolver(client)
	used := make(map[string]bool, len(in))
	out := make([]entities.OrderItem, 0, len(in))
	for _, itemIn := range in {
		if prev, ok := byID[itemIn.ID]; ok && itemIn.ID != "" {
			if used[itemIn.ID] {
				return nil, ErrDuplicateOrderItem
			}
			used[itemIn.ID] = true
			prev.Quantity = itemIn.Quantity
			prev.Observations = strings.TrimSpace(itemIn.Observations)
			out = append(out, prev)
			continue
		}
		item, err := resolver.resolve(ctx, itemIn)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func needsClient(in []OrderItemInput, existing []entities.OrderItem) bool {
	known := make(map[string]bool, len(existing))
	for _, it := range existing {
		known[it.ID] = true
	}
	for _, it := range in {
		if it.FactorID != "" && !known[it.ID] {
			return true
		}
	}
	return false
}

type itemResolver struct {
	u        *OrderUseCase
	client   entities.Client
	services map[string]entities.Service
	factors  map[string]entities.Factor
}

func (u *OrderUseCase) newItemResolver(client entities.Client) *itemResolver {
	return &itemResolver{
		u:        u,
		client:   client,
		services: map[string]entities.Service{},
		factors:  map[string]entities.Factor{},
	}
}

// resolve snapshots the catalog data of a new line and prices it, applying
// the requested factor when FactorID is set.
func (r *itemResolver) resolve(ctx context.Context, in OrderItemInput) (entities.OrderItem, error) {
	svc, err := r.service(ctx, strings.TrimSpace(in.ServiceID))
	if err != nil {
		return entities.OrderItem{}, err
	}

	item := entities.OrderItem{
		ID:           uuid.NewString(),
		ServiceID:    svc.ID,
		Code:         svc.Code,
		Description:  svc.Title,
		Unit:         "un",
		Quantity:     in.Quantity,
		UnitPrice:    svc.UnitPrice,
		Observations: strings.TrimSpace(in.Observations),
	}

	subID := strings.TrimSpace(in.SubServiceID)
	factorID := strings.TrimSpace(in.FactorID)
	if subID == "" {
		if factorID != "" {
			return entities.OrderItem{}, ErrFactorRequiresSub
		}
		return item, nil
	}

	sub, ok := svc.SubService(subID)
	if !ok {
		return entities.OrderItem{}, ErrSubServiceNotFound
	}
	item.SubServiceID = sub.ID
	item.Code = sub.Code
	item.Description = sub.Description
	item.Unit = sub.Unit
	item.UnitPrice = sub.UnitPrice

	if factorID == "" {
		return item, nil
	}
	factor, err := r.factor(ctx, factorID)
	if err != nil {
		return entities.OrderItem{}, err
	}
	price, applied, err := pricing.PriceWithFactor(sub, r.client, factor)
	if err != nil {
		return entities.OrderItem{}, err
	}
	item.UnitPrice = price
	item.Factor = applied
	return item, nil
}

func (r *itemResolver) service(ctx context.Context, id string) (entities.Service, error) {
	if id == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	s, err := r.u.catalog.GetService(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" || s.Deleted {
		return entities.Service{}, ErrServiceNotFound
	}
	r.services[id] = s
	return s, nil
}

func (r *itemResolver) factor(ctx context.Context, id string) (entities.Factor, error) {
	if f, ok := r.factors[id]; ok {
		return f, nil
	}
	f, err := r.u.factors.GetByID(ctx, id)
	if err != nil {
		return entities.Factor{}, err
	}
	if f.ID == "" {
		return entities.Factor{}, ErrFactorNotFound
	}
	r.factors[id] = f
	return f, nil
}

func snapshotClient(o *entities.Order, c entities.Client) {
	o.ClientID = c.ID
	o.ClientName = c.Name
	o.ClientDocument = c.Document
	o.ClientCity = c.City
	o.ClientState = c.State
}

// calendarDay truncates t to its date at UTC midnight; a zero t yields the
// date of fallback.
func calendarDay(t, fallback time.Time) time.Time {
	if t.IsZero() {
		t = fallback
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
