package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndReadBackup(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	rel, err := store.SaveBackup([]byte(`{"payments":[]}`), ".json", at)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "backups/2025/03/cabinet-20250304-103000-"))
	assert.True(t, strings.HasSuffix(rel, ".json"))
	assert.True(t, store.Exists(rel))

	data, err := store.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, `{"payments":[]}`, string(data))
}

func TestLocalStorage_BackupsNewestFirst(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	list, err := store.Backups()
	require.NoError(t, err)
	assert.Empty(t, list)

	older, err := store.SaveBackup([]byte("a"), ".json", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	newer, err := store.SaveBackup([]byte("b"), ".json", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	list, err = store.Backups()
	require.NoError(t, err)
	assert.Equal(t, []string{newer, older}, list)
}

func TestLocalStorage_PathsStayInsideBase(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, store.GetFullPath("etc/passwd"), store.GetFullPath("../../etc/passwd"))
}
