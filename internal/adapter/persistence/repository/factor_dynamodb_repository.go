package repository

import (
	"context"
	"sort"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Factor documents keep the field names of the legacy collection so imported
// data reads back unchanged; id and factor_id are additions.
type factorSubItemRecord struct {
	ID          string  `dynamodbav:"id"`
	Code        int     `dynamodbav:"cod_subitem"`
	Description string  `dynamodbav:"descricao_subitem"`
	Value       float64 `dynamodbav:"valor"`
	FactorID    string  `dynamodbav:"factor_id"`
}

type factorRecord struct {
	ID          string                `dynamodbav:"id"`
	Code        int                   `dynamodbav:"cod_fator"`
	Description string                `dynamodbav:"descricao_fator"`
	SubItems    []factorSubItemRecord `dynamodbav:"subitems"`
	CreatedAt   string                `dynamodbav:"created_at"`
	UpdatedAt   string                `dynamodbav:"updated_at"`
}

// FactorDynamoRepository persists correction factors in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Factor codes come from the "factors" counter.
type FactorDynamoRepository struct {
	ddb       database.DynamoDBAPI
	tableName string
	seq       *sequence
}

var _ interfaces.IFactorRepository = (*FactorDynamoRepository)(nil)

func NewFactorDynamoRepository(ddb database.DynamoDBAPI, tableName, countersTable string) *FactorDynamoRepository {
	return &FactorDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		seq:       newSequence(ddb, countersTable),
	}
}

func (r *FactorDynamoRepository) Create(ctx context.Context, f entities.Factor) (entities.Factor, error) {
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now

	build := func(seq int) entities.Factor {
		withCode := f
		withCode.SubItems = append([]entities.FactorSubItem(nil), f.SubItems...)
		withCode.AssignCode(seq)
		return withCode
	}
	seq, err := r.seq.insertNext(ctx, FactorsCounter, r.tableName, func(seq int) (any, error) {
		return toFactorRecord(build(seq)), nil
	})
	if err != nil {
		return entities.Factor{}, err
	}
	return build(seq), nil
}

func (r *FactorDynamoRepository) GetByID(ctx context.Context, id string) (entities.Factor, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	return r.decode(item, err)
}

// List returns every factor ordered by code.
func (r *FactorDynamoRepository) List(ctx context.Context) ([]entities.Factor, error) {
	items, err := scanAllIDs(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	var recs []factorRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &recs); err != nil {
		return nil, err
	}
	factors := lo.FilterMap(recs, func(rec factorRecord, _ int) (entities.Factor, bool) {
		return fromFactorRecord(rec), !isMetadata(rec.ID)
	})
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Code < factors[j].Code
	})
	return factors, nil
}

func (r *FactorDynamoRepository) Update(ctx context.Context, f entities.Factor) (entities.Factor, error) {
	rec := toFactorRecord(f)
	item, err := updateFields(ctx, r.ddb, r.tableName, f.ID, map[string]any{
		"descricao_fator": rec.Description,
		"subitems":        rec.SubItems,
		"updated_at":      nowString(),
	})
	return r.decode(item, err)
}

func (r *FactorDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, id)
}

func (r *FactorDynamoRepository) decode(item map[string]types.AttributeValue, err error) (entities.Factor, error) {
	if err != nil || item == nil {
		return entities.Factor{}, err
	}
	var rec factorRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.Factor{}, err
	}
	return fromFactorRecord(rec), nil
}

func toFactorRecord(f entities.Factor) factorRecord {
	return factorRecord{
		ID:          f.ID,
		Code:        f.Code,
		Description: f.Description,
		SubItems: lo.Map(f.SubItems, func(si entities.FactorSubItem, _ int) factorSubItemRecord {
			return factorSubItemRecord{
				ID:          si.ID,
				Code:        si.Code,
				Description: si.Description,
				Value:       si.Value.InexactFloat64(),
				FactorID:    si.FactorID,
			}
		}),
		CreatedAt: formatTime(f.CreatedAt),
		UpdatedAt: formatTime(f.UpdatedAt),
	}
}

func fromFactorRecord(rec factorRecord) entities.Factor {
	return entities.Factor{
		ID:          rec.ID,
		Code:        rec.Code,
		Description: rec.Description,
		SubItems: lo.Map(rec.SubItems, func(si factorSubItemRecord, _ int) entities.FactorSubItem {
			return entities.FactorSubItem{
				ID:          si.ID,
				Code:        si.Code,
				Description: si.Description,
				Value:       decimal.NewFromFloat(si.Value),
				FactorID:    si.FactorID,
			}
		}),
		CreatedAt: parseTime(rec.CreatedAt),
		UpdatedAt: parseTime(rec.UpdatedAt),
	}
}
