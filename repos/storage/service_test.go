package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
)

func sampleData() AppData {
	return AppData{
		Members: []TeamMember{
			{
				ID:             "1",
				Name:           "Ana",
				MonthlyPayment: 150,
				PaymentStatus:  map[string]bool{"2024-01": true},
				Absences:       []Absence{{Date: "2024-03-06", Reason: "Trabalho"}},
				IsGoalkeeper:   pointer.Bool(true),
			},
		},
		Events:         []Event{{ID: "1", Title: "Churrasco", Date: "2024-12-20", Type: "churrasco"}},
		CashEntries:    []CashEntry{{ID: "1", PlayerName: "João", Amount: 15, Date: "2024-03-15"}},
		ExtraPlayers:   []string{"Jogador Extra 1"},
		DrawHistory:    []TeamDraw{},
		TeamDrawCounts: map[string]int{},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(sampleData())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.LastModified, "Save should stamp lastModified")
	assert.NotZero(t, saved.Version, "Save should stamp version")

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, saved, loaded)
	assert.True(t, loaded.Members[0].Goalkeeper())
}

func TestSave_StampsIncrease(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(t.TempDir(), func() time.Time { return now })

	first, err := store.Save(sampleData())
	require.NoError(t, err)

	now = now.Add(time.Millisecond)
	second, err := store.Save(sampleData())
	require.NoError(t, err)

	assert.Greater(t, second.Version, first.Version)
	assert.True(t, second.LastModified > first.LastModified)
}

func TestLoad_MissingIsAbsent(t *testing.T) {
	store := NewStore(t.TempDir())

	_, ok := store.Load()
	assert.False(t, ok)
	assert.False(t, store.Exists())
}

func TestLoad_MalformedIsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SharedStorageFile), []byte("{not json"), 0o644))

	_, ok := store.Load()
	assert.False(t, ok, "malformed content should read as absent")
	assert.True(t, store.Exists(), "Exists only checks key presence")
}

func TestClear(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Save(sampleData())
	require.NoError(t, err)
	require.True(t, store.Exists())

	require.NoError(t, store.Clear())
	assert.False(t, store.Exists())

	// Clearing an already absent key is fine.
	assert.NoError(t, store.Clear())
}

func TestClone_Isolation(t *testing.T) {
	original := sampleData()
	clone := original.Clone()

	clone.Members[0].PaymentStatus["2024-02"] = true
	clone.Members[0].Name = "Outro"
	clone.TeamDrawCounts["a,b"] = 3

	assert.NotContains(t, original.Members[0].PaymentStatus, "2024-02")
	assert.Equal(t, "Ana", original.Members[0].Name)
	assert.Empty(t, original.TeamDrawCounts)
}
