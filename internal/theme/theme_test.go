package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "theme.json")
	store := NewStore(path)

	require.NoError(t, store.Save(Dark))
	require.Equal(t, Dark, store.Load())

	require.NoError(t, store.Save(Light))
	require.Equal(t, Light, store.Load())
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewStore(path)

	got := store.Load()
	if got != Light && got != Dark {
		t.Fatalf("fallback produced unknown mode %q", got)
	}
}

func TestSaveRejectsUnknownMode(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "theme.json"))
	require.Error(t, store.Save(Mode("sepia")))
}

func TestToggle(t *testing.T) {
	require.Equal(t, Light, Toggle(Dark))
	require.Equal(t, Dark, Toggle(Light))
}
