package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/AndreiLesi/aws-serverless-developer-ws/propertyid"
)

// DynamoDBAPI is the subset of the DynamoDB client used by Store.
// *dynamodb.Client satisfies it.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store provides DynamoDB operations on property and contract status records.
type Store struct {
	client DynamoDBAPI
	config Config
}

// New creates a new Store instance.
func New(client DynamoDBAPI, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Config returns the effective configuration.
func (s *Store) Config() Config {
	return s.config
}

// Get retrieves an item by key, returning ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, table string, key PK) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, mapError(table, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return &Item{Raw: result.Item}, nil
}

// Update sets the given attributes on the item at key, creating the item if
// it doesn't exist. Attributes that are part of the key are ignored.
func (s *Store) Update(ctx context.Context, table string, key PK, item map[string]types.AttributeValue) error {
	updateExpr, exprNames, exprValues := buildSetExpression(key, item)
	if updateExpr == "" {
		return ErrNoAttributes
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	return mapError(table, err)
}

// UpdatePropertyStatus records the evaluation outcome of a property.
func (s *Store) UpdatePropertyStatus(ctx context.Context, key propertyid.Key, status string) error {
	return s.Update(ctx, s.config.PropertiesTable, PropertyKey(key), map[string]types.AttributeValue{
		"status": &types.AttributeValueMemberS{Value: status},
	})
}

// UpdateContractStatus upserts the contract status of a property.
func (s *Store) UpdateContractStatus(ctx context.Context, c ContractStatus) error {
	return s.Update(ctx, s.config.ContractStatusTable, ContractKey(c.PropertyID), map[string]types.AttributeValue{
		"contract_id":               &types.AttributeValueMemberS{Value: c.ContractID},
		"contract_status":           &types.AttributeValueMemberS{Value: c.ContractStatus},
		"contract_last_modified_on": &types.AttributeValueMemberS{Value: c.ContractLastModifiedOn},
	})
}

// GetContractStatus returns the contract status of a property.
func (s *Store) GetContractStatus(ctx context.Context, propertyID string) (*ContractStatus, error) {
	item, err := s.Get(ctx, s.config.ContractStatusTable, ContractKey(propertyID))
	if err != nil {
		return nil, err
	}

	var c ContractStatus
	if err := item.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal contract status: %w", err)
	}
	return &c, nil
}

// buildSetExpression builds a SET update expression for item, skipping key
// attributes. Placeholders are assigned in sorted attribute order so the
// expression is stable for the same input.
func buildSetExpression(key PK, item map[string]types.AttributeValue) (string, map[string]string, map[string]types.AttributeValue) {
	attrs := make([]string, 0, len(item))
	for k := range item {
		if _, isKey := key[k]; isKey {
			continue
		}
		attrs = append(attrs, k)
	}
	if len(attrs) == 0 {
		return "", nil, nil
	}
	slices.Sort(attrs)

	exprNames := make(map[string]string, len(attrs))
	exprValues := make(map[string]types.AttributeValue, len(attrs))
	setClauses := make([]string, 0, len(attrs))
	for i, k := range attrs {
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = item[k]
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	return "SET " + strings.Join(setClauses, ", "), exprNames, exprValues
}

// mapError maps DynamoDB errors to store errors.
func mapError(table string, err error) error {
	if err == nil {
		return nil
	}

	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return fmt.Errorf("%w: %s: %w", ErrTableNotFound, table, err)
	}
	return err
}
