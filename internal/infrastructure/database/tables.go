package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"orcamentos/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Secondary indexes queried by the repositories.
const (
	ClientsDocumentIndex = "document-index"
	UsersEmailIndex      = "email-index"
	ServicesGroupIndex   = "group_id-index"
)

// TableAdmin is the subset of *dynamodb.Client needed to provision tables.
type TableAdmin interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

type tableDef struct {
	name  string
	key   string
	index *indexDef
}

type indexDef struct {
	name string
	key  string
}

func tableDefs(t config.Tables) []tableDef {
	return []tableDef{
		{name: t.Clients, key: "id", index: &indexDef{name: ClientsDocumentIndex, key: "document"}},
		{name: t.Orders, key: "id"},
		{name: t.Factors, key: "id"},
		{name: t.Services, key: "id", index: &indexDef{name: ServicesGroupIndex, key: "group_id"}},
		{name: t.ServiceGroups, key: "id"},
		{name: t.Users, key: "id", index: &indexDef{name: UsersEmailIndex, key: "email"}},
		{name: t.Counters, key: "name"},
	}
}

// EnsureTables creates every missing table (PAY_PER_REQUEST) and waits until
// it is active. Existing tables are left untouched.
func EnsureTables(ctx context.Context, ddb TableAdmin, tables config.Tables) error {
	for _, def := range tableDefs(tables) {
		_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.name)})
		if err == nil {
			log.Printf("[database][migrate] table exists name=%s", def.name)
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return fmt.Errorf("describe table %s: %w", def.name, err)
		}

		if _, err := ddb.CreateTable(ctx, createTableInput(def)); err != nil {
			return fmt.Errorf("create table %s: %w", def.name, err)
		}
		log.Printf("[database][migrate] table created name=%s", def.name)

		if client, ok := ddb.(*dynamodb.Client); ok {
			waiter := dynamodb.NewTableExistsWaiter(client)
			if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.name)}, 2*time.Minute); err != nil {
				return fmt.Errorf("wait table %s: %w", def.name, err)
			}
		}
	}
	return nil
}

func createTableInput(def tableDef) *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(def.name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(def.key), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(def.key), KeyType: types.KeyTypeHash},
		},
	}
	if def.index != nil {
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(def.index.key),
			AttributeType: types.ScalarAttributeTypeS,
		})
		in.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
			IndexName: aws.String(def.index.name),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(def.index.key), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}}
	}
	return in
}
