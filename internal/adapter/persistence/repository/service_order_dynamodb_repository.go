package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"os_service_api/internal/domain/entities"
	"os_service_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultServiceOrdersTableName = "service_orders"

type serviceOrderItem struct {
	ID           string `dynamodbav:"id"`
	OrderNumber  string `dynamodbav:"order_number"`
	ClientID     string `dynamodbav:"client_id"`
	TechnicianID string `dynamodbav:"technician_id,omitempty"`
	Status       string `dynamodbav:"status"`

	EquipmentType       string `dynamodbav:"equipment_type,omitempty"`
	Brand               string `dynamodbav:"brand,omitempty"`
	Model               string `dynamodbav:"model,omitempty"`
	SerialNumber        string `dynamodbav:"serial_number,omitempty"`
	ReportedDefect      string `dynamodbav:"reported_defect,omitempty"`
	ReceivedAccessories string `dynamodbav:"received_accessories,omitempty"`

	BudgetNote           string `dynamodbav:"budget_note,omitempty"`
	TechnicalExplanation string `dynamodbav:"technical_explanation,omitempty"`
	// Budget items are stored as the sanitized JSON sequence, exactly what the
	// API serves back.
	BudgetItems string `dynamodbav:"budget_items,omitempty"`

	Price string `dynamodbav:"price,omitempty"`
	Cost  string `dynamodbav:"cost,omitempty"`

	ArrivalDate    string `dynamodbav:"arrival_date,omitempty"`
	OpeningDate    string `dynamodbav:"opening_date,omitempty"`
	CompletionDate string `dynamodbav:"completion_date,omitempty"`
	DeliveryDate   string `dynamodbav:"delivery_date,omitempty"`
	PaymentDate    string `dynamodbav:"payment_date,omitempty"`

	CreatedByID string `dynamodbav:"created_by_id,omitempty"`
	Version     int64  `dynamodbav:"version"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// ServiceOrderDynamoRepository persists ServiceOrder aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Concurrency: every write carries a version condition so that two updates
// racing over the same order cannot both land (the loser gets
// interfaces.ErrVersionConflict).

type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICE_ORDERS_TABLE", defaultServiceOrdersTableName),
	}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	it, err := toServiceOrderItem(o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it)
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	var orders []entities.ServiceOrder
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it serviceOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			o, err := fromServiceOrderItem(it)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return orders, nil
}

func (r *ServiceOrderDynamoRepository) Update(ctx context.Context, o entities.ServiceOrder, expectedVersion int64) (entities.ServiceOrder, error) {
	o.Version = expectedVersion + 1
	it, err := toServiceOrderItem(o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ServiceOrder{}, interfaces.ErrVersionConflict
		}
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func (r *ServiceOrderDynamoRepository) StampPaymentDate(ctx context.Context, id string, paidAt time.Time) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #payment_date = :payment_date, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#payment_date": "payment_date",
			"#updated_at":   "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":payment_date": &types.AttributeValueMemberS{Value: paidAt.UTC().Format(time.RFC3339Nano)},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
		},
	})
	return err
}

func toServiceOrderItem(o entities.ServiceOrder) (serviceOrderItem, error) {
	it := serviceOrderItem{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		ClientID:             o.ClientID,
		TechnicianID:         o.TechnicianID,
		Status:               string(o.Status),
		EquipmentType:        o.EquipmentType,
		Brand:                o.Brand,
		Model:                o.Model,
		SerialNumber:         o.SerialNumber,
		ReportedDefect:       o.ReportedDefect,
		ReceivedAccessories:  o.ReceivedAccessories,
		BudgetNote:           o.BudgetNote,
		TechnicalExplanation: o.TechnicalExplanation,
		Price:                floatPtrToString(o.Price),
		Cost:                 floatPtrToString(o.Cost),
		ArrivalDate:          timePtrToString(o.ArrivalDate),
		OpeningDate:          timePtrToString(o.OpeningDate),
		CompletionDate:       timePtrToString(o.CompletionDate),
		DeliveryDate:         timePtrToString(o.DeliveryDate),
		PaymentDate:          timePtrToString(o.PaymentDate),
		CreatedByID:          o.CreatedByID,
		Version:              o.Version,
		CreatedAt:            o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:            o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	if len(o.BudgetItems) > 0 {
		b, err := json.Marshal(o.BudgetItems)
		if err != nil {
			return serviceOrderItem{}, err
		}
		it.BudgetItems = string(b)
	}
	return it, nil
}

func fromServiceOrderItem(it serviceOrderItem) (entities.ServiceOrder, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	o := entities.ServiceOrder{
		ID:                   it.ID,
		OrderNumber:          it.OrderNumber,
		ClientID:             it.ClientID,
		TechnicianID:         it.TechnicianID,
		Status:               entities.OrderStatus(it.Status),
		EquipmentType:        it.EquipmentType,
		Brand:                it.Brand,
		Model:                it.Model,
		SerialNumber:         it.SerialNumber,
		ReportedDefect:       it.ReportedDefect,
		ReceivedAccessories:  it.ReceivedAccessories,
		BudgetNote:           it.BudgetNote,
		TechnicalExplanation: it.TechnicalExplanation,
		Price:                stringToFloatPtr(it.Price),
		Cost:                 stringToFloatPtr(it.Cost),
		ArrivalDate:          stringToTimePtr(it.ArrivalDate),
		OpeningDate:          stringToTimePtr(it.OpeningDate),
		CompletionDate:       stringToTimePtr(it.CompletionDate),
		DeliveryDate:         stringToTimePtr(it.DeliveryDate),
		PaymentDate:          stringToTimePtr(it.PaymentDate),
		CreatedByID:          it.CreatedByID,
		Version:              it.Version,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}

	if it.BudgetItems != "" {
		if err := json.Unmarshal([]byte(it.BudgetItems), &o.BudgetItems); err != nil {
			return entities.ServiceOrder{}, err
		}
	}
	return o, nil
}
