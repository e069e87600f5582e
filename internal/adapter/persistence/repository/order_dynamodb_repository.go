package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
)

type orderItemRecord struct {
	ID           string               `dynamodbav:"id"`
	ServiceID    string               `dynamodbav:"service_id"`
	SubServiceID string               `dynamodbav:"sub_service_id,omitempty"`
	Code         string               `dynamodbav:"code"`
	Description  string               `dynamodbav:"description"`
	Unit         string               `dynamodbav:"unit"`
	Quantity     string               `dynamodbav:"quantity"`
	UnitPrice    string               `dynamodbav:"unit_price"`
	Total        string               `dynamodbav:"total"`
	Observations string               `dynamodbav:"observations,omitempty"`
	Factor       *appliedFactorRecord `dynamodbav:"factor,omitempty"`
}

type appliedFactorRecord struct {
	FactorID      string `dynamodbav:"factor_id"`
	FactorCode    int    `dynamodbav:"factor_code"`
	SubItemID     string `dynamodbav:"sub_item_id"`
	SubItemCode   int    `dynamodbav:"sub_item_code"`
	Description   string `dynamodbav:"description"`
	Value         string `dynamodbav:"value"`
	BaseUnitPrice string `dynamodbav:"base_unit_price"`
}

type orderRecord struct {
	ID             string            `dynamodbav:"id"`
	Code           string            `dynamodbav:"code"`
	ClientID       string            `dynamodbav:"client_id"`
	ClientName     string            `dynamodbav:"client_name"`
	ClientDocument string            `dynamodbav:"client_document"`
	ClientCity     string            `dynamodbav:"client_city"`
	ClientState    string            `dynamodbav:"client_state"`
	Date           string            `dynamodbav:"date"`
	Items          []orderItemRecord `dynamodbav:"items"`
	Subtotal       string            `dynamodbav:"subtotal"`
	Discount       string            `dynamodbav:"discount"`
	Total          string            `dynamodbav:"total"`
	Status         string            `dynamodbav:"status"`
	Observations   string            `dynamodbav:"observations,omitempty"`
	Deleted        bool              `dynamodbav:"deleted"`
	CreatedAt      string            `dynamodbav:"created_at"`
	UpdatedAt      string            `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Codes come from the "orders" row of the counters table and are written in
// the same transaction as the order itself.
type OrderDynamoRepository struct {
	ddb       database.DynamoDBAPI
	tableName string
	seq       *sequence
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb database.DynamoDBAPI, tableName, countersTable string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		seq:       newSequence(ddb, countersTable),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	seq, err := r.seq.insertNext(ctx, OrdersCounter, r.tableName, func(seq int) (any, error) {
		withCode := o
		withCode.Code = formatOrderCode(seq)
		return toOrderRecord(withCode), nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	o.Code = formatOrderCode(seq)
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || item == nil {
		return entities.Order{}, err
	}
	var rec orderRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.Order{}, err
	}
	return fromOrderRecord(rec), nil
}

// List returns active orders, most recent date first, then by code.
func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	items, err := scanActive(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	var recs []orderRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &recs); err != nil {
		return nil, err
	}
	orders := lo.FilterMap(recs, func(rec orderRecord, _ int) (entities.Order, bool) {
		return fromOrderRecord(rec), !rec.Deleted && !isMetadata(rec.ID)
	})
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].Date.Equal(orders[j].Date) {
			return orders[i].Date.After(orders[j].Date)
		}
		return entities.CompareCodes(orders[i].Code, orders[j].Code) > 0
	})
	return orders, nil
}

// Update replaces the mutable fields of an order. Code, created_at and the
// deleted flag are never touched.
func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) (entities.Order, error) {
	rec := toOrderRecord(o)
	item, err := updateFields(ctx, r.ddb, r.tableName, o.ID, map[string]any{
		"client_id":       rec.ClientID,
		"client_name":     rec.ClientName,
		"client_document": rec.ClientDocument,
		"client_city":     rec.ClientCity,
		"client_state":    rec.ClientState,
		"date":            rec.Date,
		"items":           rec.Items,
		"subtotal":        rec.Subtotal,
		"discount":        rec.Discount,
		"total":           rec.Total,
		"status":          rec.Status,
		"observations":    rec.Observations,
		"updated_at":      nowString(),
	})
	return r.decode(item, err)
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	item, err := updateFields(ctx, r.ddb, r.tableName, id, map[string]any{
		"status":     string(status),
		"updated_at": nowString(),
	})
	return r.decode(item, err)
}

func (r *OrderDynamoRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.ddb, r.tableName, id)
}

// SoftDeleteAll flags every active order as deleted and returns how many
// were affected.
func (r *OrderDynamoRepository) SoftDeleteAll(ctx context.Context) (int, error) {
	items, err := scanActive(ctx, r.ddb, r.tableName)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		var rec orderRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return count, err
		}
		ok, err := softDelete(ctx, r.ddb, r.tableName, rec.ID)
		if err != nil {
			return count, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

func (r *OrderDynamoRepository) decode(item map[string]types.AttributeValue, err error) (entities.Order, error) {
	if err != nil || item == nil {
		return entities.Order{}, err
	}
	var rec orderRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.Order{}, err
	}
	return fromOrderRecord(rec), nil
}

func formatOrderCode(seq int) string {
	return fmt.Sprintf("%0*d", entities.OrderCodeWidth, seq)
}

func toOrderRecord(o entities.Order) orderRecord {
	return orderRecord{
		ID:             o.ID,
		Code:           o.Code,
		ClientID:       o.ClientID,
		ClientName:     o.ClientName,
		ClientDocument: o.ClientDocument,
		ClientCity:     o.ClientCity,
		ClientState:    o.ClientState,
		Date:           formatTime(o.Date),
		Items:          lo.Map(o.Items, func(it entities.OrderItem, _ int) orderItemRecord { return toOrderItemRecord(it) }),
		Subtotal:       decimalToString(o.Subtotal),
		Discount:       decimalToString(o.Discount),
		Total:          decimalToString(o.Total),
		Status:         string(o.Status),
		Observations:   o.Observations,
		Deleted:        o.Deleted,
		CreatedAt:      formatTime(o.CreatedAt),
		UpdatedAt:      formatTime(o.UpdatedAt),
	}
}

func toOrderItemRecord(it entities.OrderItem) orderItemRecord {
	rec := orderItemRecord{
		ID:           it.ID,
		ServiceID:    it.ServiceID,
		SubServiceID: it.SubServiceID,
		Code:         it.Code,
		Description:  it.Description,
		Unit:         it.Unit,
		Quantity:     decimalToString(it.Quantity),
		UnitPrice:    decimalToString(it.UnitPrice),
		Total:        decimalToString(it.Total),
		Observations: it.Observations,
	}
	if it.Factor != nil {
		rec.Factor = &appliedFactorRecord{
			FactorID:      it.Factor.FactorID,
			FactorCode:    it.Factor.FactorCode,
			SubItemID:     it.Factor.SubItemID,
			SubItemCode:   it.Factor.SubItemCode,
			Description:   it.Factor.Description,
			Value:         decimalToString(it.Factor.Value),
			BaseUnitPrice: decimalToString(it.Factor.BaseUnitPrice),
		}
	}
	return rec
}

func fromOrderRecord(rec orderRecord) entities.Order {
	return entities.Order{
		ID:             rec.ID,
		Code:           rec.Code,
		ClientID:       rec.ClientID,
		ClientName:     rec.ClientName,
		ClientDocument: rec.ClientDocument,
		ClientCity:     rec.ClientCity,
		ClientState:    rec.ClientState,
		Date:           parseTime(rec.Date),
		Items:          lo.Map(rec.Items, func(it orderItemRecord, _ int) entities.OrderItem { return fromOrderItemRecord(it) }),
		Subtotal:       parseDecimal(rec.Subtotal),
		Discount:       parseDecimal(rec.Discount),
		Total:          parseDecimal(rec.Total),
		Status:         entities.OrderStatus(rec.Status),
		Observations:   rec.Observations,
		Deleted:        rec.Deleted,
		CreatedAt:      parseTime(rec.CreatedAt),
		UpdatedAt:      parseTime(rec.UpdatedAt),
	}
}

func fromOrderItemRecord(rec orderItemRecord) entities.OrderItem {
	it := entities.OrderItem{
		ID:           rec.ID,
		ServiceID:    rec.ServiceID,
		SubServiceID: rec.SubServiceID,
		Code:         rec.Code,
		Description:  rec.Description,
		Unit:         rec.Unit,
		Quantity:     parseDecimal(rec.Quantity),
		UnitPrice:    parseDecimal(rec.UnitPrice),
		Total:        parseDecimal(rec.Total),
		Observations: rec.Observations,
	}
	if rec.Factor != nil {
		it.Factor = &entities.AppliedFactor{
			FactorID:      rec.Factor.FactorID,
			FactorCode:    rec.Factor.FactorCode,
			SubItemID:     rec.Factor.SubItemID,
			SubItemCode:   rec.Factor.SubItemCode,
			Description:   rec.Factor.Description,
			Value:         parseDecimal(rec.Factor.Value),
			BaseUnitPrice: parseDecimal(rec.Factor.BaseUnitPrice),
		}
	}
	return it
}
