package repository

import (
	"context"
	"sort"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
)

type serviceGroupRecord struct {
	ID          string `dynamodbav:"id"`
	Code        string `dynamodbav:"code"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

type subServiceRecord struct {
	ID             string   `dynamodbav:"id"`
	Code           string   `dynamodbav:"code"`
	Description    string   `dynamodbav:"description"`
	Unit           string   `dynamodbav:"unit"`
	UnitPrice      string   `dynamodbav:"unit_price"`
	ServiceID      string   `dynamodbav:"service_id"`
	AllowedFactors []string `dynamodbav:"allowed_factors"`
}

type serviceRecord struct {
	ID          string             `dynamodbav:"id"`
	GroupID     string             `dynamodbav:"group_id"`
	Code        string             `dynamodbav:"code"`
	Title       string             `dynamodbav:"title"`
	Description string             `dynamodbav:"description,omitempty"`
	UnitPrice   string             `dynamodbav:"unit_price"`
	SubServices []subServiceRecord `dynamodbav:"sub_services"`
	Deleted     bool               `dynamodbav:"deleted"`
	CreatedAt   string             `dynamodbav:"created_at"`
	UpdatedAt   string             `dynamodbav:"updated_at"`
}

// CatalogDynamoRepository persists service groups and services.
//
// Table requirements:
//   - groups table PK: id (string)
//   - services table PK: id (string), GSI group_id-index: group_id (string)
//
// Sub-services live inside their service document.
type CatalogDynamoRepository struct {
	ddb           database.DynamoDBAPI
	groupsTable   string
	servicesTable string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb database.DynamoDBAPI, groupsTable, servicesTable string) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{ddb: ddb, groupsTable: groupsTable, servicesTable: servicesTable}
}

func (r *CatalogDynamoRepository) CreateGroup(ctx context.Context, g entities.ServiceGroup) (entities.ServiceGroup, error) {
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	if err := putNew(ctx, r.ddb, r.groupsTable, toGroupRecord(g)); err != nil {
		if isConditionFailed(err) {
			return entities.ServiceGroup{}, interfaces.ErrAlreadyExists
		}
		return entities.ServiceGroup{}, err
	}
	return g, nil
}

func (r *CatalogDynamoRepository) GetGroup(ctx context.Context, id string) (entities.ServiceGroup, error) {
	item, err := getByID(ctx, r.ddb, r.groupsTable, id)
	return decodeGroup(item, err)
}

func (r *CatalogDynamoRepository) GetGroupByCode(ctx context.Context, code string) (entities.ServiceGroup, error) {
	items, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.groupsTable),
		FilterExpression: aws.String("#code = :code"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil || len(items) == 0 {
		return entities.ServiceGroup{}, err
	}
	return decodeGroup(items[0], nil)
}

// ListGroups returns every group ordered by code, without services.
func (r *CatalogDynamoRepository) ListGroups(ctx context.Context) ([]entities.ServiceGroup, error) {
	items, err := scanAllIDs(ctx, r.ddb, r.groupsTable)
	if err != nil {
		return nil, err
	}
	var recs []serviceGroupRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &recs); err != nil {
		return nil, err
	}
	groups := lo.Map(recs, func(rec serviceGroupRecord, _ int) entities.ServiceGroup { return fromGroupRecord(rec) })
	sort.SliceStable(groups, func(i, j int) bool {
		return entities.CompareCodes(groups[i].Code, groups[j].Code) < 0
	})
	return groups, nil
}

func (r *CatalogDynamoRepository) UpdateGroup(ctx context.Context, g entities.ServiceGroup) (entities.ServiceGroup, error) {
	item, err := updateFields(ctx, r.ddb, r.groupsTable, g.ID, map[string]any{
		"code":        g.Code,
		"name":        g.Name,
		"description": g.Description,
		"updated_at":  nowString(),
	})
	return decodeGroup(item, err)
}

// DeleteGroup removes the group document. Its services are handled by the
// caller.
func (r *CatalogDynamoRepository) DeleteGroup(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.groupsTable, id)
}

func (r *CatalogDynamoRepository) CreateService(ctx context.Context, s entities.Service) (entities.Service, error) {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if err := putNew(ctx, r.ddb, r.servicesTable, toServiceRecord(s)); err != nil {
		if isConditionFailed(err) {
			return entities.Service{}, interfaces.ErrAlreadyExists
		}
		return entities.Service{}, err
	}
	return s, nil
}

func (r *CatalogDynamoRepository) GetService(ctx context.Context, id string) (entities.Service, error) {
	item, err := getByID(ctx, r.ddb, r.servicesTable, id)
	return decodeService(item, err)
}

// ListServices returns active services ordered by numeric code.
func (r *CatalogDynamoRepository) ListServices(ctx context.Context) ([]entities.Service, error) {
	items, err := scanActive(ctx, r.ddb, r.servicesTable)
	if err != nil {
		return nil, err
	}
	return activeServices(items)
}

// ListServicesByGroup returns the active services of a group ordered by
// numeric code.
func (r *CatalogDynamoRepository) ListServicesByGroup(ctx context.Context, groupID string) ([]entities.Service, error) {
	items, err := queryIndex(ctx, r.ddb, r.servicesTable, database.ServicesGroupIndex, "group_id", groupID)
	if err != nil {
		return nil, err
	}
	return activeServices(items)
}

func (r *CatalogDynamoRepository) UpdateService(ctx context.Context, s entities.Service) (entities.Service, error) {
	rec := toServiceRecord(s)
	item, err := updateFields(ctx, r.ddb, r.servicesTable, s.ID, map[string]any{
		"group_id":     rec.GroupID,
		"code":         rec.Code,
		"title":        rec.Title,
		"description":  rec.Description,
		"unit_price":   rec.UnitPrice,
		"sub_services": rec.SubServices,
		"updated_at":   nowString(),
	})
	return decodeService(item, err)
}

func (r *CatalogDynamoRepository) SoftDeleteService(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.ddb, r.servicesTable, id)
}

func (r *CatalogDynamoRepository) SoftDeleteAllServices(ctx context.Context) (int, error) {
	services, err := r.ListServices(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, s := range services {
		ok, err := softDelete(ctx, r.ddb, r.servicesTable, s.ID)
		if err != nil {
			return count, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

func activeServices(items []map[string]types.AttributeValue) ([]entities.Service, error) {
	var recs []serviceRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &recs); err != nil {
		return nil, err
	}
	services := lo.FilterMap(recs, func(rec serviceRecord, _ int) (entities.Service, bool) {
		return fromServiceRecord(rec), !rec.Deleted && !isMetadata(rec.ID)
	})
	sort.SliceStable(services, func(i, j int) bool {
		return entities.CompareCodes(services[i].Code, services[j].Code) < 0
	})
	return services, nil
}

func decodeGroup(item map[string]types.AttributeValue, err error) (entities.ServiceGroup, error) {
	if err != nil || item == nil {
		return entities.ServiceGroup{}, err
	}
	var rec serviceGroupRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.ServiceGroup{}, err
	}
	return fromGroupRecord(rec), nil
}

func decodeService(item map[string]types.AttributeValue, err error) (entities.Service, error) {
	if err != nil || item == nil {
		return entities.Service{}, err
	}
	var rec serviceRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.Service{}, err
	}
	return fromServiceRecord(rec), nil
}

func toGroupRecord(g entities.ServiceGroup) serviceGroupRecord {
	return serviceGroupRecord{
		ID:          g.ID,
		Code:        g.Code,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}

func fromGroupRecord(rec serviceGroupRecord) entities.ServiceGroup {
	return entities.ServiceGroup{
		ID:          rec.ID,
		Code:        rec.Code,
		Name:        rec.Name,
		Description: rec.Description,
		CreatedAt:   parseTime(rec.CreatedAt),
		UpdatedAt:   parseTime(rec.UpdatedAt),
	}
}

func toServiceRecord(s entities.Service) serviceRecord {
	return serviceRecord{
		ID:          s.ID,
		GroupID:     s.GroupID,
		Code:        s.Code,
		Title:       s.Title,
		Description: s.Description,
		UnitPrice:   decimalToString(s.UnitPrice),
		SubServices: lo.Map(s.SubServices, func(ss entities.SubService, _ int) subServiceRecord {
			return subServiceRecord{
				ID:             ss.ID,
				Code:           ss.Code,
				Description:    ss.Description,
				Unit:           ss.Unit,
				UnitPrice:      decimalToString(ss.UnitPrice),
				ServiceID:      s.ID,
				AllowedFactors: lo.Ternary(ss.AllowedFactors == nil, []string{}, ss.AllowedFactors),
			}
		}),
		Deleted:   s.Deleted,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

func fromServiceRecord(rec serviceRecord) entities.Service {
	subs := lo.Map(rec.SubServices, func(ss subServiceRecord, _ int) entities.SubService {
		return entities.SubService{
			ID:             ss.ID,
			Code:           ss.Code,
			Description:    ss.Description,
			Unit:           ss.Unit,
			UnitPrice:      parseDecimal(ss.UnitPrice),
			ServiceID:      rec.ID,
			AllowedFactors: ss.AllowedFactors,
		}
	})
	sort.SliceStable(subs, func(i, j int) bool {
		return entities.CompareCodes(subs[i].Code, subs[j].Code) < 0
	})
	return entities.Service{
		ID:          rec.ID,
		GroupID:     rec.GroupID,
		Code:        rec.Code,
		Title:       rec.Title,
		Description: rec.Description,
		UnitPrice:   parseDecimal(rec.UnitPrice),
		SubServices: subs,
		Deleted:     rec.Deleted,
		CreatedAt:   parseTime(rec.CreatedAt),
		UpdatedAt:   parseTime(rec.UpdatedAt),
	}
}
