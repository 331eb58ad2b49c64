package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		expected []string
	}{
		{
			name:     "preserves first occurrence order",
			ids:      []string{"alice", "bob", "alice", "carol", "bob"},
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name:     "trims whitespace before dedup",
			ids:      []string{" alice ", "alice", "bob\t"},
			expected: []string{"alice", "bob"},
		},
		{
			name:     "drops blank entries",
			ids:      []string{"", "alice", "   ", "bob"},
			expected: []string{"alice", "bob"},
		},
		{
			name:     "empty input yields empty snapshot",
			ids:      nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NewSnapshot(tt.ids))
		})
	}
}

func TestNormalizePreferences(t *testing.T) {
	t.Run("valid records pass through", func(t *testing.T) {
		prefs := NormalizePreferences([]RawPreference{
			{ParticipantID: "alice", Wishlist: []string{"red", "blue"}},
			{ParticipantID: "bob", Wishlist: []string{"blue"}},
		})

		require.Len(t, prefs, 2)
		require.Equal(t, []string{"red", "blue"}, prefs["alice"].Wishlist)
		require.Equal(t, []string{"blue"}, prefs["bob"].Wishlist)
		require.Equal(t, "alice", prefs["alice"].ParticipantID)
	})

	t.Run("blank participant id invalidates record", func(t *testing.T) {
		prefs := NormalizePreferences([]RawPreference{
			{ParticipantID: "  ", Wishlist: []string{"red"}},
		})
		require.Empty(t, prefs)
	})

	t.Run("duplicate wishlist entries keep first rank", func(t *testing.T) {
		prefs := NormalizePreferences([]RawPreference{
			{ParticipantID: "alice", Wishlist: []string{"red", "blue", "red", "blue"}},
		})
		require.Equal(t, []string{"red", "blue"}, prefs["alice"].Wishlist)
	})

	t.Run("blank wishlist entries dropped", func(t *testing.T) {
		prefs := NormalizePreferences([]RawPreference{
			{ParticipantID: "alice", Wishlist: []string{"", "red", "  "}},
		})
		require.Equal(t, []string{"red"}, prefs["alice"].Wishlist)
	})

	t.Run("second record for same participant ignored", func(t *testing.T) {
		prefs := NormalizePreferences([]RawPreference{
			{ParticipantID: "alice", Wishlist: []string{"red"}},
			{ParticipantID: "alice", Wishlist: []string{"blue"}},
		})
		require.Equal(t, []string{"red"}, prefs["alice"].Wishlist)
	})

	t.Run("empty wishlist is the no-preference variant", func(t *testing.T) {
		prefs := NormalizePreferences([]RawPreference{
			{ParticipantID: "alice"},
		})
		require.True(t, prefs["alice"].IsEmpty())
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("parses full document", func(t *testing.T) {
		doc := `
participants:
  - alice
  - bob
  - carol
preferences:
  - participantId: alice
    wishlist: [Red, Blue]
  - participantId: bob
    wishlist: [Blue]
groups:
  - name: Red
    capacity: 2
  - name: Blue
    capacity: 0
`
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		f, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, []string{"alice", "bob", "carol"}, f.Participants)
		require.Len(t, f.Preferences, 2)
		require.Equal(t, []string{"Red", "Blue"}, f.Preferences[0].Wishlist)
		require.Equal(t, []GroupSpec{{Name: "Red", Capacity: 2}, {Name: "Blue"}}, f.Groups)
	})

	t.Run("derived group layout fields", func(t *testing.T) {
		doc := `
participants: [alice, bob]
groupCount: 2
`
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		f, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, 2, f.GroupCount)
		require.Zero(t, f.GroupSize)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("participants: [unterminated"), 0o600))

		_, err := LoadFile(path)
		require.Error(t, err)
	})
}
