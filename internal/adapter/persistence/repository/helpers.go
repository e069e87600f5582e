package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"orcamentos/internal/infrastructure/database"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// metadataID is a reserved document id used by imported data sets; it is
// never a real record and is skipped by every listing.
const metadataID = "metadata"

func nowString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func decimalToString(d decimal.Decimal) string {
	return d.String()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// getByID loads a single item with a consistent read. A missing item yields
// (nil, nil).
func getByID(ctx context.Context, ddb database.DynamoDBAPI, table, id string) (map[string]types.AttributeValue, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// putNew writes item only if its id does not exist yet.
func putNew(ctx context.Context, ddb database.DynamoDBAPI, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

// updateFields merges fields into an existing item ("SET #k = :k, ...") and
// returns the item after the write. A missing item yields (nil, nil).
func updateFields(ctx context.Context, ddb database.DynamoDBAPI, table, id string, fields map[string]any) (map[string]types.AttributeValue, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := map[string]string{"#id": "id"}
	values := make(map[string]types.AttributeValue, len(fields))
	expr := "SET "
	for i, k := range keys {
		av, err := attributevalue.Marshal(fields[k])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			expr += ", "
		}
		expr += "#" + k + " = :" + k
		names["#"+k] = k
		values[":"+k] = av
	}

	out, err := ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(out.Attributes) == 0 {
		return nil, nil
	}
	return out.Attributes, nil
}

// softDelete flags an item as deleted without erasing it.
func softDelete(ctx context.Context, ddb database.DynamoDBAPI, table, id string) (bool, error) {
	item, err := updateFields(ctx, ddb, table, id, map[string]any{
		"deleted":    true,
		"updated_at": nowString(),
	})
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// deleteItem removes an item physically.
func deleteItem(ctx context.Context, ddb database.DynamoDBAPI, table, id string) (bool, error) {
	_, err := ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(table),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// scanActive returns every item that is not soft-deleted and not the
// reserved metadata document. The filter runs inside DynamoDB; the cost is
// still proportional to the table size, not to the number of active items.
func scanActive(ctx context.Context, ddb database.DynamoDBAPI, table string) ([]map[string]types.AttributeValue, error) {
	return scanAll(ctx, ddb, &dynamodb.ScanInput{
		TableName:        aws.String(table),
		FilterExpression: aws.String("(attribute_not_exists(#deleted) OR #deleted = :false) AND #id <> :metadata"),
		ExpressionAttributeNames: map[string]string{
			"#deleted": "deleted",
			"#id":      "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false":    &types.AttributeValueMemberBOOL{Value: false},
			":metadata": &types.AttributeValueMemberS{Value: metadataID},
		},
	})
}

// scanAllIDs returns every item except the metadata document.
func scanAllIDs(ctx context.Context, ddb database.DynamoDBAPI, table string) ([]map[string]types.AttributeValue, error) {
	return scanAll(ctx, ddb, &dynamodb.ScanInput{
		TableName:        aws.String(table),
		FilterExpression: aws.String("#id <> :metadata"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":metadata": &types.AttributeValueMemberS{Value: metadataID},
		},
	})
}

func scanAll(ctx context.Context, ddb database.DynamoDBAPI, in *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// queryIndex returns every item whose index key equals value.
func queryIndex(ctx context.Context, ddb database.DynamoDBAPI, table, index, key, value string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

func isMetadata(id string) bool {
	return id == metadataID
}
