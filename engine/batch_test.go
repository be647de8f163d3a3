package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchPreservesOrderAndCollectsErrors(t *testing.T) {
	paths := []string{"/a.go", "/b.go", "/c.go"}
	results, err := Batch(context.Background(), paths, func(ctx context.Context, path string) (interface{}, error) {
		if path == "/b.go" {
			return nil, assert.AnError
		}
		return len(path), nil
	})
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "/a.go", results[0].Path)
	assert.Equal(t, "/b.go", results[1].Path)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "/c.go", results[2].Path)
	assert.NoError(t, results[2].Err)
}

func TestBatchEmpty(t *testing.T) {
	results, err := Batch(context.Background(), nil, func(ctx context.Context, path string) (interface{}, error) {
		t.Fatal("worker should not be called")
		return nil, nil
	})
	assert.NoError(t, err)
	assert.Empty(t, results)
}
