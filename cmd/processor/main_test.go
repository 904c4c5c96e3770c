package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invsettle/internal/config"
	"invsettle/internal/persistence"
	"invsettle/pkg/contracts/domain"
)

func TestCollectDocuments_ExplicitArgsWin(t *testing.T) {
	docs, err := collectDocuments("", nil, []string{"a.pdf", "b.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.xlsx"}, docs)
}

func TestCollectDocuments_ScansDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.pdf", "a.xlsx", "notes.txt", "other.PDF"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	docs, err := collectDocuments(dir, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "other.PDF"),
		filepath.Join(dir, "z.pdf"),
	}, docs)
}

func TestCollectDocuments_MissingDirectory(t *testing.T) {
	_, err := collectDocuments(filepath.Join(t.TempDir(), "absent"), nil, nil)
	assert.Error(t, err)
}

func TestOpenStore_DryRunUsesMemory(t *testing.T) {
	store, err := openStore(&config.Config{}, true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.IsType(t, &persistence.MemoryStore{}, store)
}

func TestOpenStore_RequiresDatabaseURL(t *testing.T) {
	_, err := openStore(&config.Config{}, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestRecordingStore_CapturesItems(t *testing.T) {
	memory := persistence.NewMemoryStore()
	recording := &recordingStore{Store: memory}

	items := []domain.LineItem{{ItemNo: "2305893"}, {ItemNo: "1711800"}}
	require.NoError(t, recording.BulkInsertItems(context.Background(), items))

	assert.Len(t, recording.items, 2)
	assert.Len(t, memory.Items(), 2)
}
