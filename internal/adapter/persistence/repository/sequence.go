package repository

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strconv"
	"time"

	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Counter names in the counters table.
const (
	OrdersCounter  = "orders"
	FactorsCounter = "factors"
)

const (
	maxSequenceAttempts = 16
	sequenceBackoffBase = 5 * time.Millisecond
)

// sequence hands out gap-free sequential numbers.
//
// The counter row and the new record are written in one DynamoDB
// transaction: the counter put is conditioned on the value read just before,
// so two concurrent writers can never commit the same number. The loser's
// transaction is canceled and it retries with a fresh read.
type sequence struct {
	ddb          database.DynamoDBAPI
	countersName string
	sleep        func(time.Duration)
}

func newSequence(ddb database.DynamoDBAPI, countersTable string) *sequence {
	return &sequence{ddb: ddb, countersName: countersTable, sleep: time.Sleep}
}

type counterItem struct {
	Name    string `dynamodbav:"name"`
	Current int    `dynamodbav:"current"`
}

// current returns the last value handed out by counter (0 when unused) and
// whether the counter row exists.
func (s *sequence) current(ctx context.Context, counter string) (int, bool, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.countersName),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: counter},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, false, err
	}
	if len(out.Item) == 0 {
		return 0, false, nil
	}
	var it counterItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return 0, false, err
	}
	return it.Current, true, nil
}

// insertNext reserves the next value of counter and writes the record built
// from it into table, atomically. It returns the value used.
func (s *sequence) insertNext(ctx context.Context, counter, table string, build func(seq int) (any, error)) (int, error) {
	for attempt := 1; attempt <= maxSequenceAttempts; attempt++ {
		cur, exists, err := s.current(ctx, counter)
		if err != nil {
			return 0, err
		}
		next := cur + 1

		record, err := build(next)
		if err != nil {
			return 0, err
		}
		recordAV, err := attributevalue.MarshalMap(record)
		if err != nil {
			return 0, err
		}

		_, err = s.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				{Put: s.counterPut(counter, cur, next, exists)},
				{Put: &types.Put{
					TableName:           aws.String(table),
					Item:                recordAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				}},
			},
		})
		if err == nil {
			return next, nil
		}

		retry, dup := classifyTransactionError(err)
		if dup {
			return 0, interfaces.ErrAlreadyExists
		}
		if !retry {
			return 0, err
		}
		log.Printf("[sequence][repository] conflict counter=%s attempt=%d value=%d", counter, attempt, next)
		s.sleep(backoff(attempt))
	}
	return 0, interfaces.ErrSequenceConflict
}

func (s *sequence) counterPut(counter string, cur, next int, exists bool) *types.Put {
	put := &types.Put{
		TableName: aws.String(s.countersName),
		Item: map[string]types.AttributeValue{
			"name":    &types.AttributeValueMemberS{Value: counter},
			"current": &types.AttributeValueMemberN{Value: strconv.Itoa(next)},
		},
	}
	if exists {
		put.ConditionExpression = aws.String("#current = :current")
		put.ExpressionAttributeNames = map[string]string{"#current": "current"}
		put.ExpressionAttributeValues = map[string]types.AttributeValue{
			":current": &types.AttributeValueMemberN{Value: strconv.Itoa(cur)},
		}
	} else {
		put.ConditionExpression = aws.String("attribute_not_exists(#name)")
		put.ExpressionAttributeNames = map[string]string{"#name": "name"}
	}
	return put
}

// classifyTransactionError tells whether a failed transaction lost the race
// on the counter (retry) or collided with an existing record id (dup).
func classifyTransactionError(err error) (retry bool, dup bool) {
	var conflict *types.TransactionConflictException
	if errors.As(err, &conflict) {
		return true, false
	}
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false, false
	}
	for i, reason := range canceled.CancellationReasons {
		code := aws.ToString(reason.Code)
		switch {
		case code == "TransactionConflict":
			return true, false
		case code == "ConditionalCheckFailed" && i == 0:
			return true, false
		case code == "ConditionalCheckFailed" && i == 1:
			return false, true
		}
	}
	return false, false
}

func backoff(attempt int) time.Duration {
	d := sequenceBackoffBase * time.Duration(attempt)
	return d + time.Duration(rand.Int63n(int64(sequenceBackoffBase)))
}
