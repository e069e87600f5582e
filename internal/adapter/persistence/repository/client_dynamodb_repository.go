package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
)

type clientFactorRecord struct {
	FactorID  string `dynamodbav:"factor_id"`
	SubItemID string `dynamodbav:"sub_item_id"`
}

type clientRecord struct {
	ID            string               `dynamodbav:"id"`
	Name          string               `dynamodbav:"name"`
	Document      string               `dynamodbav:"document"`
	Email         string               `dynamodbav:"email,omitempty"`
	Phone         string               `dynamodbav:"phone,omitempty"`
	Street        string               `dynamodbav:"street,omitempty"`
	Number        string               `dynamodbav:"number,omitempty"`
	Complement    string               `dynamodbav:"complement,omitempty"`
	Neighborhood  string               `dynamodbav:"neighborhood,omitempty"`
	City          string               `dynamodbav:"city,omitempty"`
	State         string               `dynamodbav:"state,omitempty"`
	ZipCode       string               `dynamodbav:"zip_code,omitempty"`
	Mayor         string               `dynamodbav:"mayor,omitempty"`
	Party         string               `dynamodbav:"party,omitempty"`
	MayorPhone    string               `dynamodbav:"mayor_phone,omitempty"`
	ClientFactors []clientFactorRecord `dynamodbav:"client_factors"`
	Observations  string               `dynamodbav:"observations,omitempty"`
	Deleted       bool                 `dynamodbav:"deleted"`
	CreatedAt     string               `dynamodbav:"created_at"`
	UpdatedAt     string               `dynamodbav:"updated_at"`
}

// ClientDynamoRepository persists clients in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI document-index: document (string)
type ClientDynamoRepository struct {
	ddb       database.DynamoDBAPI
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb database.DynamoDBAPI, tableName string) *ClientDynamoRepository {
	return &ClientDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	if err := putNew(ctx, r.ddb, r.tableName, toClientRecord(c)); err != nil {
		if isConditionFailed(err) {
			return entities.Client{}, interfaces.ErrAlreadyExists
		}
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	return r.decode(item, err)
}

// GetByDocument returns the active client holding document, if any.
func (r *ClientDynamoRepository) GetByDocument(ctx context.Context, document string) (entities.Client, error) {
	items, err := queryIndex(ctx, r.ddb, r.tableName, database.ClientsDocumentIndex, "document", document)
	if err != nil {
		return entities.Client{}, err
	}
	for _, item := range items {
		c, err := r.decode(item, nil)
		if err != nil {
			return entities.Client{}, err
		}
		if !c.Deleted {
			return c, nil
		}
	}
	return entities.Client{}, nil
}

// List returns active clients ordered by name.
func (r *ClientDynamoRepository) List(ctx context.Context) ([]entities.Client, error) {
	items, err := scanActive(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	var recs []clientRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &recs); err != nil {
		return nil, err
	}
	clients := lo.FilterMap(recs, func(rec clientRecord, _ int) (entities.Client, bool) {
		return fromClientRecord(rec), !rec.Deleted && !isMetadata(rec.ID)
	})
	sort.SliceStable(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})
	return clients, nil
}

func (r *ClientDynamoRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	rec := toClientRecord(c)
	item, err := updateFields(ctx, r.ddb, r.tableName, c.ID, map[string]any{
		"name":           rec.Name,
		"document":       rec.Document,
		"email":          rec.Email,
		"phone":          rec.Phone,
		"street":         rec.Street,
		"number":         rec.Number,
		"complement":     rec.Complement,
		"neighborhood":   rec.Neighborhood,
		"city":           rec.City,
		"state":          rec.State,
		"zip_code":       rec.ZipCode,
		"mayor":          rec.Mayor,
		"party":          rec.Party,
		"mayor_phone":    rec.MayorPhone,
		"client_factors": rec.ClientFactors,
		"observations":   rec.Observations,
		"updated_at":     nowString(),
	})
	return r.decode(item, err)
}

func (r *ClientDynamoRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.ddb, r.tableName, id)
}

func (r *ClientDynamoRepository) decode(item map[string]types.AttributeValue, err error) (entities.Client, error) {
	if err != nil || item == nil {
		return entities.Client{}, err
	}
	var rec clientRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.Client{}, err
	}
	return fromClientRecord(rec), nil
}

func toClientRecord(c entities.Client) clientRecord {
	return clientRecord{
		ID:           c.ID,
		Name:         c.Name,
		Document:     c.Document,
		Email:        c.Email,
		Phone:        c.Phone,
		Street:       c.Street,
		Number:       c.Number,
		Complement:   c.Complement,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Mayor:        c.Mayor,
		Party:        c.Party,
		MayorPhone:   c.MayorPhone,
		ClientFactors: lo.Map(c.ClientFactors, func(cf entities.ClientFactor, _ int) clientFactorRecord {
			return clientFactorRecord{FactorID: cf.FactorID, SubItemID: cf.SubItemID}
		}),
		Observations: c.Observations,
		Deleted:      c.Deleted,
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
}

func fromClientRecord(rec clientRecord) entities.Client {
	return entities.Client{
		ID:           rec.ID,
		Name:         rec.Name,
		Document:     rec.Document,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Street:       rec.Street,
		Number:       rec.Number,
		Complement:   rec.Complement,
		Neighborhood: rec.Neighborhood,
		City:         rec.City,
		State:        rec.State,
		ZipCode:      rec.ZipCode,
		Mayor:        rec.Mayor,
		Party:        rec.Party,
		MayorPhone:   rec.MayorPhone,
		ClientFactors: lo.Map(rec.ClientFactors, func(cf clientFactorRecord, _ int) entities.ClientFactor {
			return entities.ClientFactor{FactorID: cf.FactorID, SubItemID: cf.SubItemID}
		}),
		Observations: rec.Observations,
		Deleted:      rec.Deleted,
		CreatedAt:    parseTime(rec.CreatedAt),
		UpdatedAt:    parseTime(rec.UpdatedAt),
	}
}
