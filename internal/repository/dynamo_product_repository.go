package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Compile-time check to ensure dynamoProductRepository implements ProductRepository
var _ interfaces.ProductRepository = (*dynamoProductRepository)(nil)

// DynamoDBAPI is the subset of the DynamoDB client the repositories use.
// Narrowed to an interface so tests can substitute a fake.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type dynamoProductRepository struct {
	client DynamoDBAPI
	table  string
	logger *zap.Logger
}

// NewDynamoProductRepository creates a DynamoDB-backed ProductRepository.
func NewDynamoProductRepository(client DynamoDBAPI, table string, logger *zap.Logger) interfaces.ProductRepository {
	return &dynamoProductRepository{
		client: client,
		table:  table,
		logger: logger.Named("DynamoProductRepo"),
	}
}

func productKey(id string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"id": &ddbtypes.AttributeValueMemberS{Value: id},
	}
}

// List scans the full table. Product items are told apart from user items
// sharing the table by the user key prefix. Enumeration order is whatever
// DynamoDB returns.
func (r *dynamoProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	var startKey map[string]ddbtypes.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			r.logger.Error("Failed to scan products table", zap.Error(err))
			return nil, fmt.Errorf("failed to scan products table: %w", err)
		}

		var page []models.Product
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			r.logger.Error("Failed to unmarshal scanned products", zap.Error(err))
			return nil, fmt.Errorf("failed to unmarshal products: %w", err)
		}
		for _, p := range page {
			if strings.HasPrefix(p.ID, models.UserKeyPrefix) {
				continue
			}
			products = append(products, p)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (r *dynamoProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       productKey(id),
	})
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, models.ErrProductNotFound
	}

	var p models.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		r.logger.Error("Failed to unmarshal product item", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &p, nil
}

func (r *dynamoProductRepository) Create(ctx context.Context, product *models.Product) error {
	item, err := attributevalue.MarshalMap(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		r.logger.Error("Failed to put product", zap.Error(err), zap.String("id", product.ID))
		return fmt.Errorf("failed to put product: %w", err)
	}
	return nil
}

// Update builds a SET expression from the supplied fields only, so
// unspecified attributes are never touched. The attribute_exists condition
// keeps UpdateItem from upserting a new item for an unknown id.
func (r *dynamoProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	names, values := update.Fields()
	if len(names) == 0 {
		return nil, models.ErrEmptyUpdate
	}

	exprNames := make(map[string]string, len(names))
	exprValues := make(map[string]ddbtypes.AttributeValue, len(names))
	setParts := make([]string, 0, len(names))
	for i, name := range names {
		nameKey := fmt.Sprintf("#f%d", i+1)
		valueKey := fmt.Sprintf(":v%d", i+1)
		av, err := attributevalue.Marshal(values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update value %q: %w", name, err)
		}
		exprNames[nameKey] = name
		exprValues[valueKey] = av
		setParts = append(setParts, nameKey+" = "+valueKey)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       productKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(setParts, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              ddbtypes.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, models.ErrProductNotFound
		}
		r.logger.Error("Failed to update product", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	var p models.Product
	if err := attributevalue.UnmarshalMap(out.Attributes, &p); err != nil {
		r.logger.Error("Failed to unmarshal updated product", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to unmarshal updated product: %w", err)
	}
	return &p, nil
}

func (r *dynamoProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 productKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return models.ErrProductNotFound
		}
		r.logger.Error("Failed to delete product", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
