package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// S3Client is the part of *s3.Client the document store needs.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3DocumentStore keeps every collection as the object <Prefix><collection>.json.
type S3DocumentStore struct {
	Client S3Client
	Bucket string
	Prefix string
}

func (s *S3DocumentStore) key(collection Collection) string {
	return s.Prefix + string(collection) + ".json"
}

func (s *S3DocumentStore) Read(ctx context.Context, collection Collection, out any) error {
	res, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(collection)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return ErrDocumentNotFound
		}
		logging.Log.Errorf("STORE: GetObject %s failed: %v", s.key(collection), err)
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		logging.Log.Errorf("STORE: failed to read object %s: %v", s.key(collection), err)
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		logging.Log.Errorf("STORE: failed to decode %s: %v", collection, err)
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *S3DocumentStore) Write(ctx context.Context, collection Collection, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		logging.Log.Errorf("STORE: failed to encode %s: %v", collection, err)
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.key(collection)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logging.Log.Errorf("STORE: PutObject %s failed: %v", s.key(collection), err)
		return err
	}
	return nil
}
