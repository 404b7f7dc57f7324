package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesTuningName(t *testing.T) {
	assert.Equal(t, "EBGDAE", Preferences{}.TuningName())
	assert.Equal(t, "EADG", Preferences{Tuning: "EADG"}.TuningName())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	p, err := s.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, p)

	require.NoError(t, s.Put("alice", Preferences{Tuning: "DADGAD", Reverse: true}))
	p, err = s.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, Preferences{Tuning: "DADGAD", Reverse: true}, p)

	p, err = s.Get("bob")
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, p)
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "sessions.yaml")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("42", Preferences{Tuning: "EADG"}))
	require.NoError(t, s.Put("7", Preferences{Reverse: true}))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	p, err := reopened.Get("42")
	require.NoError(t, err)
	assert.Equal(t, Preferences{Tuning: "EADG"}, p)
	p, err = reopened.Get("7")
	require.NoError(t, err)
	assert.True(t, p.Reverse)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("u", Preferences{Reverse: true}))
}

func TestFileStoreBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not a map"), 0644))
	_, err := OpenFileStore(path)
	assert.Error(t, err)
}

func TestFileStoreConcurrentPut(t *testing.T) {
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "sessions.yaml"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, u := range []string{"a", "b", "c", "d"} {
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Put(u, Preferences{Tuning: "EADG"}))
		}()
	}
	wg.Wait()

	for _, u := range []string{"a", "b", "c", "d"} {
		p, err := s.Get(u)
		require.NoError(t, err)
		assert.Equal(t, "EADG", p.Tuning)
	}
}
