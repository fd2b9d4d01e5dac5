package repository

import (
	"context"
	"errors"
	"strconv"

	"os_service_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrderCountersTableName = "order_counters"

// OrderSequenceDynamoRepository hands out order numbers from one counter item
// per calendar year.
//
// Table requirements:
//   - PK: year (string)
//
// The increment uses a single atomic ADD, so concurrent intakes each get a
// distinct sequence value. This replaces the old count-then-insert approach,
// which could hand two simultaneous intakes the same number.

type OrderSequenceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderSequence = (*OrderSequenceDynamoRepository)(nil)

func NewOrderSequenceDynamoRepository(ddb *dynamodb.Client) *OrderSequenceDynamoRepository {
	return &OrderSequenceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDER_COUNTERS_TABLE", defaultOrderCountersTableName),
	}
}

func (r *OrderSequenceDynamoRepository) Next(ctx context.Context, year int) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"year": &types.AttributeValueMemberS{Value: strconv.Itoa(year)},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["seq"]
	if !ok {
		return 0, errors.New("order counter returned no seq attribute")
	}
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("order counter seq attribute is not numeric")
	}
	return strconv.ParseInt(n.Value, 10, 64)
}
