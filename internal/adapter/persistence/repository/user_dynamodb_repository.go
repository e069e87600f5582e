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

type userRecord struct {
	ID           string `dynamodbav:"id"`
	Username     string `dynamodbav:"username"`
	Email        string `dynamodbav:"email"`
	AccessLevel  string `dynamodbav:"access_level"`
	Status       string `dynamodbav:"status"`
	PasswordHash string `dynamodbav:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// UserDynamoRepository persists users in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI email-index: email (string)
//
// Emails are stored lower-cased.
type UserDynamoRepository struct {
	ddb       database.DynamoDBAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb database.DynamoDBAPI, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.Email = normalizeEmail(u.Email)
	if err := putNew(ctx, r.ddb, r.tableName, toUserRecord(u)); err != nil {
		if isConditionFailed(err) {
			return entities.User{}, interfaces.ErrAlreadyExists
		}
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	return decodeUser(item, err)
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	items, err := queryIndex(ctx, r.ddb, r.tableName, database.UsersEmailIndex, "email", normalizeEmail(email))
	if err != nil || len(items) == 0 {
		return entities.User{}, err
	}
	return decodeUser(items[0], nil)
}

// List returns every user ordered by email.
func (r *UserDynamoRepository) List(ctx context.Context) ([]entities.User, error) {
	items, err := scanAllIDs(ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	var recs []userRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &recs); err != nil {
		return nil, err
	}
	users := lo.Map(recs, func(rec userRecord, _ int) entities.User { return fromUserRecord(rec) })
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func (r *UserDynamoRepository) Update(ctx context.Context, u entities.User) (entities.User, error) {
	item, err := updateFields(ctx, r.ddb, r.tableName, u.ID, map[string]any{
		"username":      u.Username,
		"email":         normalizeEmail(u.Email),
		"access_level":  string(u.AccessLevel),
		"status":        string(u.Status),
		"password_hash": u.PasswordHash,
		"updated_at":    nowString(),
	})
	return decodeUser(item, err)
}

func (r *UserDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func decodeUser(item map[string]types.AttributeValue, err error) (entities.User, error) {
	if err != nil || item == nil {
		return entities.User{}, err
	}
	var rec userRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return entities.User{}, err
	}
	return fromUserRecord(rec), nil
}

func toUserRecord(u entities.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		AccessLevel:  string(u.AccessLevel),
		Status:       string(u.Status),
		PasswordHash: u.PasswordHash,
		CreatedAt:    formatTime(u.CreatedAt),
		UpdatedAt:    formatTime(u.UpdatedAt),
	}
}

func fromUserRecord(rec userRecord) entities.User {
	return entities.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		AccessLevel:  entities.AccessLevel(rec.AccessLevel),
		Status:       entities.UserStatus(rec.Status),
		PasswordHash: rec.PasswordHash,
		CreatedAt:    parseTime(rec.CreatedAt),
		UpdatedAt:    parseTime(rec.UpdatedAt),
	}
}
