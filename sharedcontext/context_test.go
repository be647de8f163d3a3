package sharedcontext

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
)

func newTestContext() (*Context, *fsadapter.MemoryFS) {
	fs := fsadapter.NewMemoryFS()
	fs.Put("/r/a.go", []byte("package main"))
	m := model.New("/r", model.DefaultOptions())
	return New(fs, m), fs
}

func TestGetFileContentCachesAndReleases(t *testing.T) {
	c, _ := newTestContext()
	ctx := context.Background()

	content, err := c.GetFileContent(ctx, "/r/a.go")
	assert.NoError(t, err)
	assert.Equal(t, "package main", string(content))

	c.ReleaseFileContent("/r/a.go")
	content, err = c.GetFileContent(ctx, "/r/a.go")
	assert.NoError(t, err)
	assert.Equal(t, "package main", string(content))
}

func TestGetFileContentMissing(t *testing.T) {
	c, _ := newTestContext()
	_, err := c.GetFileContent(context.Background(), "/r/missing.go")
	assert.Error(t, err)
}

func TestRequestMemoryReleaseEvictsLRU(t *testing.T) {
	fs := fsadapter.NewMemoryFS()
	fs.Put("/r/a.go", []byte("a"))
	fs.Put("/r/b.go", []byte("b"))
	m := model.New("/r", model.DefaultOptions())
	c := New(fs, m)
	ctx := context.Background()

	_, _ = c.GetFileContent(ctx, "/r/a.go")
	_, _ = c.GetFileContent(ctx, "/r/b.go")

	c.RequestMemoryRelease(0.5)

	c.cacheMu.RLock()
	_, aCached := c.cache["/r/a.go"]
	_, bCached := c.cache["/r/b.go"]
	c.cacheMu.RUnlock()

	assert.False(t, aCached)
	assert.True(t, bCached)
}

func TestPatternRoundTrip(t *testing.T) {
	c, _ := newTestContext()
	p := &model.Pattern{Type: model.PatternTagDataSource, Name: "http-get", Regex: regexp.MustCompile(`(?i)http\.get`), Confidence: 0.8}
	c.RegisterPattern(p)

	found := c.FindMatchingPatterns("resp := http.Get(url)", model.PatternTagDataSource)
	assert.Len(t, found, 1)
	assert.Equal(t, "http-get", found[0].Name)
}

func TestRecordEventAndSummarizeIssues(t *testing.T) {
	c, _ := newTestContext()
	c.SetPhase(PhaseFileAnalysis)
	c.RecordEvent("file-failed", map[string]interface{}{"path": "/r/bad.go", "cause": "parse error"})
	c.RecordMetric("files_processed", 3)

	c.SummarizeIssues()

	assert.Len(t, c.Model.Issues, 1)
	assert.Equal(t, "/r/bad.go", c.Model.Issues[0].Path)
	assert.Equal(t, "FILE_ANALYSIS", c.Model.Issues[0].Phase)
	assert.Equal(t, float64(3), c.Metrics()["files_processed"])
}

func TestCancel(t *testing.T) {
	c, _ := newTestContext()
	assert.False(t, c.Cancelled())
	c.Cancel()
	assert.True(t, c.Cancelled())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "INITIALIZATION", PhaseInitialization.String())
	assert.Equal(t, "FINALIZATION", PhaseFinalization.String())
}
