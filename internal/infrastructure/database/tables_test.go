package database

import (
	"context"
	"testing"

	"orcamentos/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeTableAdmin struct {
	existing map[string]bool
	created  []*dynamodb.CreateTableInput
}

func (f *fakeTableAdmin) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.existing[aws.ToString(in.TableName)] {
		return &dynamodb.DescribeTableOutput{}, nil
	}
	return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
}

func (f *fakeTableAdmin) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = append(f.created, in)
	return &dynamodb.CreateTableOutput{}, nil
}

func TestEnsureTables(t *testing.T) {
	tables := config.Load().Tables
	admin := &fakeTableAdmin{existing: map[string]bool{tables.Orders: true}}

	if err := EnsureTables(context.Background(), admin, tables); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admin.created) != 6 {
		t.Fatalf("expected 6 created tables, got %d", len(admin.created))
	}

	for _, in := range admin.created {
		name := aws.ToString(in.TableName)
		if name == tables.Orders {
			t.Fatalf("existing table must not be recreated")
		}
		switch name {
		case tables.Users:
			if len(in.GlobalSecondaryIndexes) != 1 || aws.ToString(in.GlobalSecondaryIndexes[0].IndexName) != UsersEmailIndex {
				t.Fatalf("users table without email index: %+v", in.GlobalSecondaryIndexes)
			}
		case tables.Counters:
			if aws.ToString(in.KeySchema[0].AttributeName) != "name" {
				t.Fatalf("counters must be keyed by name")
			}
		}
	}
}
