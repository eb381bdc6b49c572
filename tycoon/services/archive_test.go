package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
)

type fakeBucket struct {
	objects map[string][]byte
	fail    bool
}

func (f *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func newArchiveStore(t *testing.T, created ...time.Time) repositories.Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.InitializeSchema(ctx))

	store := repositories.NewStore(db.BunDB())
	for i, at := range created {
		require.NoError(t, store.Repos().Settlements.Create(ctx, &models.Settlement{
			AccountID: "acct",
			Kind:      config.SettlementCollect,
			FromTime:  at.Add(-time.Hour),
			ToTime:    at,
			Amount:    float64(i + 1),
			CreatedAt: at,
		}))
	}
	return store
}

func TestSettlementArchiver(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := newArchiveStore(t,
		now.Add(-72*time.Hour),
		now.Add(-48*time.Hour),
		now.Add(-time.Hour),
	)

	bucket := &fakeBucket{objects: map[string][]byte{}}
	a := NewSettlementArchiver(store, bucket, "ledger", "/settlements/")
	a.now = func() time.Time { return now }

	res, err := a.Archive(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Rows)
	require.Equal(t, []string{"settlements/2025/06/01/settlements-1-2.jsonl"}, res.Keys)

	var lines []models.Settlement
	scanner := bufio.NewScanner(bytes.NewReader(bucket.objects[res.Keys[0]]))
	for scanner.Scan() {
		var s models.Settlement
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &s))
		lines = append(lines, s)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, 1.0, lines[0].Amount)
	assert.Equal(t, 2.0, lines[1].Amount)

	// Archived rows are not uploaded twice.
	res, err = a.Archive(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, res.Rows)
	assert.Empty(t, res.Keys)
}

func TestSettlementArchiverUploadFailureKeepsRows(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := newArchiveStore(t, now.Add(-72*time.Hour))

	a := NewSettlementArchiver(store, &fakeBucket{fail: true}, "ledger", "")
	a.now = func() time.Time { return now }

	_, err := a.Archive(context.Background(), 24*time.Hour)
	require.Error(t, err)

	rows, err := store.Repos().Settlements.ListUnarchived(context.Background(), now, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
