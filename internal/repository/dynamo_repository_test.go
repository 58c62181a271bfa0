package repository

import (
	"context"
	"testing"

	"shop-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDynamoClient records the last input of each call and replies with the
// configured output or error.
type fakeDynamoClient struct {
	getIn    *dynamodb.GetItemInput
	putIn    *dynamodb.PutItemInput
	updateIn *dynamodb.UpdateItemInput
	deleteIn *dynamodb.DeleteItemInput
	scanIns  []*dynamodb.ScanInput

	getOut    *dynamodb.GetItemOutput
	updateOut *dynamodb.UpdateItemOutput
	scanOuts  []*dynamodb.ScanOutput

	putErr    error
	updateErr error
	deleteErr error
}

func (f *fakeDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getIn = params
	if f.getOut != nil {
		return f.getOut, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleteIn = params
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanIns = append(f.scanIns, params)
	if len(f.scanOuts) == 0 {
		return &dynamodb.ScanOutput{}, nil
	}
	out := f.scanOuts[0]
	f.scanOuts = f.scanOuts[1:]
	return out, nil
}

func mustMarshalMap(t *testing.T, v interface{}) map[string]ddbtypes.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return item
}

func TestDynamoProductRepositoryGetNotFound(t *testing.T) {
	fake := &fakeDynamoClient{}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	_, err := repo.Get(context.Background(), "p1")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Equal(t, "products", *fake.getIn.TableName)
}

func TestDynamoProductRepositoryGet(t *testing.T) {
	fake := &fakeDynamoClient{
		getOut: &dynamodb.GetItemOutput{
			Item: mustMarshalMap(t, models.Product{ID: "p1", Name: "Widget", Price: 9.99}),
		},
	}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	p, err := repo.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.InDelta(t, 9.99, p.Price, 0.001)

	key, ok := fake.getIn.Key["id"].(*ddbtypes.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "p1", key.Value)
}

func TestDynamoProductRepositoryListSkipsUserItemsAndPaginates(t *testing.T) {
	lastKey := map[string]ddbtypes.AttributeValue{
		"id": &ddbtypes.AttributeValueMemberS{Value: "p1"},
	}
	fake := &fakeDynamoClient{
		scanOuts: []*dynamodb.ScanOutput{
			{
				Items: []map[string]ddbtypes.AttributeValue{
					mustMarshalMap(t, models.Product{ID: "p1", Name: "Widget", Price: 9.99}),
					mustMarshalMap(t, models.User{ID: models.UserKey("admin"), Username: "admin"}),
				},
				LastEvaluatedKey: lastKey,
			},
			{
				Items: []map[string]ddbtypes.AttributeValue{
					mustMarshalMap(t, models.Product{ID: "p2", Name: "Mug", Price: 19.9}),
				},
			},
		},
	}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)

	require.Len(t, fake.scanIns, 2)
	assert.Nil(t, fake.scanIns[0].ExclusiveStartKey)
	assert.Equal(t, lastKey, fake.scanIns[1].ExclusiveStartKey)
}

func TestDynamoProductRepositoryUpdateTouchesOnlySuppliedFields(t *testing.T) {
	name := "Renamed"
	price := 12.5
	fake := &fakeDynamoClient{
		updateOut: &dynamodb.UpdateItemOutput{
			Attributes: mustMarshalMap(t, models.Product{ID: "p1", Name: name, Price: price}),
		},
	}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	updated, err := repo.Update(context.Background(), "p1", models.ProductUpdate{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	in := fake.updateIn
	require.NotNil(t, in)
	assert.Equal(t, "SET #f1 = :v1, #f2 = :v2", *in.UpdateExpression)
	assert.Equal(t, "attribute_exists(id)", *in.ConditionExpression)
	assert.Equal(t, map[string]string{"#f1": "name", "#f2": "price"}, in.ExpressionAttributeNames)
	assert.Equal(t, ddbtypes.ReturnValueAllNew, in.ReturnValues)

	v1, ok := in.ExpressionAttributeValues[":v1"].(*ddbtypes.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "Renamed", v1.Value)
	_, ok = in.ExpressionAttributeValues[":v2"].(*ddbtypes.AttributeValueMemberN)
	assert.True(t, ok)
}

func TestDynamoProductRepositoryUpdateEmpty(t *testing.T) {
	fake := &fakeDynamoClient{}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	_, err := repo.Update(context.Background(), "p1", models.ProductUpdate{})
	assert.ErrorIs(t, err, models.ErrEmptyUpdate)
	assert.Nil(t, fake.updateIn)
}

func TestDynamoProductRepositoryUpdateUnknownID(t *testing.T) {
	name := "Renamed"
	fake := &fakeDynamoClient{updateErr: &ddbtypes.ConditionalCheckFailedException{}}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	_, err := repo.Update(context.Background(), "missing", models.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestDynamoProductRepositoryDeleteUnknownID(t *testing.T) {
	fake := &fakeDynamoClient{deleteErr: &ddbtypes.ConditionalCheckFailedException{}}
	repo := NewDynamoProductRepository(fake, "products", zap.NewNop())

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Equal(t, "attribute_exists(id)", *fake.deleteIn.ConditionExpression)
}

func TestDynamoUserRepositoryCreateIsConditional(t *testing.T) {
	fake := &fakeDynamoClient{}
	repo := NewDynamoUserRepository(fake, "users", zap.NewNop())

	user := &models.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, models.UserKey("alice"), user.ID)
	assert.Equal(t, "attribute_not_exists(id)", *fake.putIn.ConditionExpression)
}

func TestDynamoUserRepositoryCreateDuplicate(t *testing.T) {
	fake := &fakeDynamoClient{putErr: &ddbtypes.ConditionalCheckFailedException{}}
	repo := NewDynamoUserRepository(fake, "users", zap.NewNop())

	err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
}

func TestDynamoUserRepositoryGetByUsername(t *testing.T) {
	fake := &fakeDynamoClient{
		getOut: &dynamodb.GetItemOutput{
			Item: mustMarshalMap(t, models.User{ID: models.UserKey("alice"), Username: "alice", PasswordHash: "hash"}),
		},
	}
	repo := NewDynamoUserRepository(fake, "users", zap.NewNop())

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)

	key, ok := fake.getIn.Key["id"].(*ddbtypes.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user::alice", key.Value)
}

func TestDynamoUserRepositoryGetByUsernameNotFound(t *testing.T) {
	fake := &fakeDynamoClient{}
	repo := NewDynamoUserRepository(fake, "users", zap.NewNop())

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestDynamoUserRepositoryListSummariesProjection(t *testing.T) {
	fake := &fakeDynamoClient{
		scanOuts: []*dynamodb.ScanOutput{
			{
				Items: []map[string]ddbtypes.AttributeValue{
					mustMarshalMap(t, models.User{ID: models.UserKey("alice"), Username: "alice", Name: "Alice"}),
				},
			},
		},
	}
	repo := NewDynamoUserRepository(fake, "users", zap.NewNop())

	summaries, err := repo.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, models.UserSummary{Username: "alice", Name: "Alice"}, summaries[0])

	in := fake.scanIns[0]
	assert.Equal(t, "id, username, #n", *in.ProjectionExpression)
	assert.Equal(t, "begins_with(id, :prefix)", *in.FilterExpression)
	assert.Equal(t, map[string]string{"#n": "name"}, in.ExpressionAttributeNames)

	prefix, ok := in.ExpressionAttributeValues[":prefix"].(*ddbtypes.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, models.UserKeyPrefix, prefix.Value)
}
