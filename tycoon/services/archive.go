package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
)

// ObjectPutter is the part of the S3 client the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a client for AWS or any S3-compatible endpoint.
func NewS3Client(ctx context.Context, key, secret, region, endpoint string) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load S3 config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type SettlementArchiver struct {
	store     repositories.Store
	client    ObjectPutter
	bucket    string
	prefix    string
	batchSize int
	now       func() time.Time
}

func NewSettlementArchiver(store repositories.Store, client ObjectPutter, bucket, prefix string) *SettlementArchiver {
	return &SettlementArchiver{
		store:     store,
		client:    client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		batchSize: config.ArchiveBatchSize,
		now:       time.Now,
	}
}

type ArchiveResult struct {
	Rows int64    `json:"rows"`
	Keys []string `json:"keys"`
}

// Archive uploads settlement rows created before now-olderThan as JSON lines,
// one object per batch, and marks them archived. Rows stay in the database.
func (a *SettlementArchiver) Archive(ctx context.Context, olderThan time.Duration) (*ArchiveResult, error) {
	now := a.now().UTC()
	cutoff := now.Add(-olderThan)
	result := &ArchiveResult{}
	repos := a.store.Repos()

	for {
		rows, err := repos.Settlements.ListUnarchived(ctx, cutoff, a.batchSize)
		if err != nil {
			return result, fmt.Errorf("failed to list settlements: %w", err)
		}
		if len(rows) == 0 {
			break
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		ids := make([]int64, len(rows))
		for i, row := range rows {
			if err := enc.Encode(row); err != nil {
				return result, fmt.Errorf("failed to encode settlement %d: %w", row.ID, err)
			}
			ids[i] = row.ID
		}

		key := a.objectKey(now, ids[0], ids[len(ids)-1])
		_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(buf.Bytes()),
			ContentType: aws.String("application/x-ndjson"),
		})
		if err != nil {
			return result, fmt.Errorf("failed to upload %s: %w", key, err)
		}

		marked, err := repos.Settlements.MarkArchived(ctx, ids, now)
		if err != nil {
			return result, fmt.Errorf("uploaded %s but failed to mark rows archived: %w", key, err)
		}

		result.Rows += marked
		result.Keys = append(result.Keys, key)
		slog.Info("Settlement batch archived",
			slog.String("type", "sys"),
			slog.String("key", key),
			slog.Int("rows", len(rows)))

		if len(rows) < a.batchSize {
			break
		}
	}
	return result, nil
}

func (a *SettlementArchiver) objectKey(at time.Time, firstID, lastID int64) string {
	name := fmt.Sprintf("%s/settlements-%d-%d.jsonl", at.Format("2006/01/02"), firstID, lastID)
	if a.prefix == "" {
		return name
	}
	return a.prefix + "/" + name
}
