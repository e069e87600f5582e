package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"orcamentos/internal/infrastructure/database"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeItem = map[string]types.AttributeValue

// fakeDynamo is an in-memory stand-in for DynamoDB that understands the
// expressions this package sends. Every call is serialized, so a transaction
// is atomic with respect to other calls.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]fakeItem

	// conflictAlways cancels every transaction on the counter condition.
	conflictAlways bool
	transactCalls  int
}

var _ database.DynamoDBAPI = (*fakeDynamo)(nil)

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]fakeItem{}}
}

func keyValue(key fakeItem) string {
	if v, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	if v, ok := key["name"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) table(name string) map[string]fakeItem {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]fakeItem{}
		f.tables[name] = t
	}
	return t
}

func copyItem(in fakeItem) fakeItem {
	out := make(fakeItem, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func stringAttr(it fakeItem, name string) string {
	if v, ok := it[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func conditionHolds(existing fakeItem, cond string, names map[string]string, values fakeItem) bool {
	switch {
	case cond == "":
		return true
	case strings.HasPrefix(cond, "attribute_not_exists("):
		return existing == nil
	case strings.HasPrefix(cond, "attribute_exists("):
		return existing != nil
	case cond == "#current = :current":
		if existing == nil {
			return false
		}
		got, _ := existing[names["#current"]].(*types.AttributeValueMemberN)
		want, _ := values[":current"].(*types.AttributeValueMemberN)
		return got != nil && want != nil && got.Value == want.Value
	}
	panic("fake dynamo: unsupported condition " + cond)
}

func (f *fakeDynamo) put(table string, it fakeItem) {
	f.table(table)[keyValue(it)] = copyItem(it)
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.table(aws.ToString(in.TableName))[keyValue(in.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(existing)}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	existing := t[keyValue(in.Item)]
	if !conditionHolds(existing, aws.ToString(in.ConditionExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	f.put(aws.ToString(in.TableName), in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	id := keyValue(in.Key)
	existing := t[id]
	if !conditionHolds(existing, aws.ToString(in.ConditionExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	updated := copyItem(existing)
	expr := strings.TrimPrefix(aws.ToString(in.UpdateExpression), "SET ")
	for _, assignment := range strings.Split(expr, ", ") {
		parts := strings.Split(assignment, " = ")
		updated[in.ExpressionAttributeNames[parts[0]]] = in.ExpressionAttributeValues[parts[1]]
	}
	t[id] = updated
	return &dynamodb.UpdateItemOutput{Attributes: copyItem(updated)}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	id := keyValue(in.Key)
	if !conditionHolds(t[id], aws.ToString(in.ConditionExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	delete(t, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attr := in.ExpressionAttributeNames["#k"]
	want := stringAttr(in.ExpressionAttributeValues, ":v")
	var out []fakeItem
	for _, it := range f.table(aws.ToString(in.TableName)) {
		if stringAttr(it, attr) == want {
			out = append(out, copyItem(it))
		}
	}
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	filter := aws.ToString(in.FilterExpression)
	var out []fakeItem
	for _, it := range f.table(aws.ToString(in.TableName)) {
		if strings.Contains(filter, ":metadata") && stringAttr(it, "id") == metadataID {
			continue
		}
		if strings.Contains(filter, "#deleted") {
			if d, ok := it["deleted"].(*types.AttributeValueMemberBOOL); ok && d.Value {
				continue
			}
		}
		if strings.Contains(filter, "#code = :code") && stringAttr(it, "code") != stringAttr(in.ExpressionAttributeValues, ":code") {
			continue
		}
		out = append(out, copyItem(it))
	}
	return &dynamodb.ScanOutput{Items: out, Count: int32(len(out))}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactCalls++

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, ti := range in.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if ti.Put == nil {
			return nil, errors.New("fake dynamo: only Put is supported in transactions")
		}
		existing := f.table(aws.ToString(ti.Put.TableName))[keyValue(ti.Put.Item)]
		ok := conditionHolds(existing, aws.ToString(ti.Put.ConditionExpression), ti.Put.ExpressionAttributeNames, ti.Put.ExpressionAttributeValues)
		if i == 0 && f.conflictAlways {
			ok = false
		}
		if !ok {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("transaction canceled"),
			CancellationReasons: reasons,
		}
	}
	for _, ti := range in.TransactItems {
		f.put(aws.ToString(ti.Put.TableName), ti.Put.Item)
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}
