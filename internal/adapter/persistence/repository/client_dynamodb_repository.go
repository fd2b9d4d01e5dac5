package repository

import (
	"context"

	"os_service_api/internal/domain/entities"
	"os_service_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultClientsTableName     = "clients"
	defaultTechniciansTableName = "technicians"
)

type personItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email,omitempty"`
	Phone string `dynamodbav:"phone,omitempty"`
}

// ClientDynamoRepository reads the clients table maintained by the main
// application. This service never writes it.

type ClientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	it, err := getPersonItem(ctx, r.ddb, r.tableName, id)
	if err != nil {
		return entities.Client{}, err
	}
	return entities.Client{ID: it.ID, Name: it.Name, Email: it.Email, Phone: it.Phone}, nil
}

// TechnicianDynamoRepository reads the technicians table. Same ownership note
// as ClientDynamoRepository.

type TechnicianDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITechnicianRepository = (*TechnicianDynamoRepository)(nil)

func NewTechnicianDynamoRepository(ddb *dynamodb.Client) *TechnicianDynamoRepository {
	return &TechnicianDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TECHNICIANS_TABLE", defaultTechniciansTableName),
	}
}

func (r *TechnicianDynamoRepository) GetByID(ctx context.Context, id string) (entities.Technician, error) {
	it, err := getPersonItem(ctx, r.ddb, r.tableName, id)
	if err != nil {
		return entities.Technician{}, err
	}
	return entities.Technician{ID: it.ID, Name: it.Name, Email: it.Email, Phone: it.Phone}, nil
}

func getPersonItem(ctx context.Context, ddb *dynamodb.Client, tableName, id string) (personItem, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return personItem{}, err
	}
	if len(out.Item) == 0 {
		return personItem{}, nil
	}

	var it personItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return personItem{}, err
	}
	return it, nil
}
