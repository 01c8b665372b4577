package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		newStore    func(t *testing.T) Store
	}{
		{description: "memory", newStore: func(t *testing.T) Store { return NewMemoryStore() }},
		{description: "file", newStore: func(t *testing.T) Store {
			return NewFileStore("file://localhost"+filepath.Join(t.TempDir(), DefaultName), nil)
		}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			store := testCase.newStore(t)
			record, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Record{}, *record)

			require.NoError(t, store.Save(ctx, "aw123", true))
			record, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Record{ClientKey: "aw123", DebugMode: true, Initialized: true}, *record)

			require.NoError(t, store.Reset(ctx))
			record, err = store.Load(ctx)
			require.NoError(t, err)
			assert.False(t, record.Initialized)
			assert.Empty(t, record.ClientKey)
			require.NoError(t, store.Reset(ctx))
		})
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), DefaultName)
	URL := "file://localhost" + location

	require.NoError(t, NewFileStore(URL, nil).Save(ctx, "client_key-1", false))

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clientKey":"client_key-1","debugMode":false,"initialized":true}`, string(data))

	record, err := NewFileStore(URL, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "client_key-1", record.ClientKey)
	assert.True(t, record.Initialized)

	require.NoError(t, NewFileStore(URL, nil).Reset(ctx))
	_, err = os.Stat(location)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_Corrupt(t *testing.T) {
	location := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(location, []byte("{not json"), 0o600))
	_, err := NewFileStore("file://localhost"+location, nil).Load(context.Background())
	assert.Error(t, err)
}
