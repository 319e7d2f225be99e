package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// DynamoClient is the part of *dynamodb.Client the document store needs.
type DynamoClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type documentItem struct {
	Collection string    `dynamodbav:"PK"`
	Body       string    `dynamodbav:"Body"`
	UpdatedAt  time.Time `dynamodbav:"UpdatedAt"`
}

// DynamoDocumentStore keeps every collection as a single item keyed by its name,
// with the JSON document in the Body attribute.
type DynamoDocumentStore struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoDocumentStore) Read(ctx context.Context, collection Collection, out any) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": string(collection)})
	if err != nil {
		logging.Log.Errorf("STORE: failed to marshal key for %s: %v", collection, err)
		return err
	}

	res, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("STORE: GetItem for %s failed: %v", collection, err)
		return err
	}
	if res.Item == nil {
		return ErrDocumentNotFound
	}

	var item documentItem
	if err := attributevalue.UnmarshalMap(res.Item, &item); err != nil {
		logging.Log.Errorf("STORE: failed to unmarshal item %s: %v", collection, err)
		return err
	}
	if err := json.Unmarshal([]byte(item.Body), out); err != nil {
		logging.Log.Errorf("STORE: failed to decode %s: %v", collection, err)
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *DynamoDocumentStore) Write(ctx context.Context, collection Collection, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		logging.Log.Errorf("STORE: failed to encode %s: %v", collection, err)
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	item, err := attributevalue.MarshalMap(documentItem{
		Collection: string(collection),
		Body:       string(body),
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		logging.Log.Errorf("STORE: failed to marshal item %s: %v", collection, err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("STORE: PutItem for %s failed: %v", collection, err)
		return err
	}
	return nil
}
