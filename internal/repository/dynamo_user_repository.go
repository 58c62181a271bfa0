package repository

import (
	"context"
	"errors"
	"fmt"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Compile-time check to ensure dynamoUserRepository implements UserRepository
var _ interfaces.UserRepository = (*dynamoUserRepository)(nil)

// dynamoUserRepository stores user items under the `user::<username>` key,
// so it can live in its own table or share the products table.
type dynamoUserRepository struct {
	client DynamoDBAPI
	table  string
	logger *zap.Logger
}

// NewDynamoUserRepository creates a DynamoDB-backed UserRepository.
func NewDynamoUserRepository(client DynamoDBAPI, table string, logger *zap.Logger) interfaces.UserRepository {
	return &dynamoUserRepository{
		client: client,
		table:  table,
		logger: logger.Named("DynamoUserRepo"),
	}
}

func (r *dynamoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: models.UserKey(username)},
		},
	})
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, models.ErrUserNotFound
	}

	var u models.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		r.logger.Error("Failed to unmarshal user item", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}

// Create inserts the user with a conditional put. The condition makes the
// uniqueness check atomic on the server side, regardless of caller
// concurrency.
func (r *dynamoUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = models.UserKey(user.Username)
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			r.logger.Warn("Attempted to create duplicate user", zap.String("username", user.Username))
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to put user", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("failed to put user: %w", err)
	}
	return nil
}

// ListSummaries scans user items only; the projection keeps password hashes
// from ever leaving the table. `name` is a DynamoDB reserved word, hence the
// placeholder.
func (r *dynamoUserRepository) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	var summaries []models.UserSummary
	var startKey map[string]ddbtypes.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.table),
			ProjectionExpression: aws.String("id, username, #n"),
			FilterExpression:     aws.String("begins_with(id, :prefix)"),
			ExpressionAttributeNames: map[string]string{
				"#n": "name",
			},
			ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
				":prefix": &ddbtypes.AttributeValueMemberS{Value: models.UserKeyPrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			r.logger.Error("Failed to scan users", zap.Error(err))
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}

		var page []models.User
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			r.logger.Error("Failed to unmarshal scanned users", zap.Error(err))
			return nil, fmt.Errorf("failed to unmarshal users: %w", err)
		}
		for _, u := range page {
			summaries = append(summaries, models.UserSummary{Username: u.Username, Name: u.Name})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	if summaries == nil {
		summaries = []models.UserSummary{}
	}
	return summaries, nil
}
