package draw

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"

	"github.com/quintafc/team-sync/repos/storage"
	"github.com/quintafc/team-sync/services/dashboard"
)

func newSession(t *testing.T, admin bool) *dashboard.Session {
	t.Helper()
	store := storage.NewStore(t.TempDir())
	b := storage.NewBroadcaster(store, time.Hour, time.Hour)
	s := dashboard.NewSession(store, b, time.Hour)
	s.Start()
	t.Cleanup(s.Stop)
	s.SetAdmin(admin)
	return s
}

// Seed data has two goalkeeper-flagged members and three field members with
// ids 2, 4 and 5.
var seedFieldIDs = []string{"2", "4", "5"}

func fiveExtras() []string {
	return []string{"Jogador Extra 1", "Jogador Extra 2", "Jogador Extra 3", "Jogador Extra 4", "Jogador Extra 5"}
}

func TestDraw_ExactPoolPartitionsAllPlayers(t *testing.T) {
	s := NewService(newSession(t, true))

	result, err := s.Draw(seedFieldIDs, fiveExtras())
	require.NoError(t, err)

	assert.Len(t, result.Draw.TeamA, 4)
	assert.Len(t, result.Draw.TeamB, 4)
	assert.Len(t, result.Draw.Goalkeepers, 2)

	all := map[string]int{}
	for _, name := range append(append([]string{}, result.Draw.TeamA...), result.Draw.TeamB...) {
		all[name]++
	}
	assert.Len(t, all, 8, "every field player appears exactly once")
	for name, n := range all {
		assert.Equal(t, 1, n, "player %s drawn more than once", name)
	}
	assert.ElementsMatch(t, []string{"Kaio Gabriel", "Gabriel Cardoso"}, result.Draw.Goalkeepers)
}

func TestDraw_SevenFieldPlayersRejectedWithoutMutation(t *testing.T) {
	session := newSession(t, true)
	s := NewService(session)
	before, beforeCounts := s.History()

	_, err := s.Draw(seedFieldIDs, fiveExtras()[:4])
	assert.ErrorIs(t, err, ErrNotEnoughFieldPlayers)

	after, afterCounts := s.History()
	assert.Equal(t, before, after, "a rejected draw leaves prior team results unchanged")
	assert.Equal(t, beforeCounts, afterCounts)
}

func TestDraw_GoalkeeperShortageRejected(t *testing.T) {
	session := newSession(t, true)

	// One keeper, nine field players.
	doc := storage.AppData{
		Members: []storage.TeamMember{
			{ID: "k1", Name: "Goleiro Um", IsGoalkeeper: pointer.Bool(true), PaymentStatus: map[string]bool{}, Absences: []storage.Absence{}},
		},
		ExtraPlayers: []string{},
	}
	for i := 0; i < 9; i++ {
		doc.Members = append(doc.Members, storage.TeamMember{
			ID:            string(rune('a' + i)),
			Name:          string(rune('A' + i)),
			PaymentStatus: map[string]bool{},
			Absences:      []storage.Absence{},
		})
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, session.ImportData(raw))

	s := NewService(session)
	ids := make([]string, 0, 9)
	for i := 0; i < 9; i++ {
		ids = append(ids, string(rune('a'+i)))
	}

	before, _ := s.History()
	_, err = s.Draw(ids, nil)
	assert.ErrorIs(t, err, ErrNotEnoughGoalkeepers)

	after, _ := s.History()
	assert.Equal(t, before, after)
}

func TestDraw_RecordsEveryGoalkeeper(t *testing.T) {
	session := newSession(t, true)

	// Three keepers, eight field players.
	keepers := []string{"Goleiro Um", "Goleiro Dois", "Goleiro Três"}
	doc := storage.AppData{ExtraPlayers: []string{}}
	for i, name := range keepers {
		doc.Members = append(doc.Members, storage.TeamMember{
			ID:            string(rune('x' + i)),
			Name:          name,
			IsGoalkeeper:  pointer.Bool(true),
			PaymentStatus: map[string]bool{},
			Absences:      []storage.Absence{},
		})
	}
	ids := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		id := string(rune('a' + i))
		ids = append(ids, id)
		doc.Members = append(doc.Members, storage.TeamMember{
			ID:            id,
			Name:          string(rune('A' + i)),
			PaymentStatus: map[string]bool{},
			Absences:      []storage.Absence{},
		})
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, session.ImportData(raw))

	s := NewService(session)
	result, err := s.Draw(ids, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, keepers, result.Draw.Goalkeepers, "every keeper is part of the draw, not just the first two")
	assert.Len(t, strings.Split(result.Signature, ","), 11, "the signature covers all eleven participants")

	history, _ := s.History()
	require.NotEmpty(t, history)
	assert.ElementsMatch(t, keepers, history[0].Goalkeepers)
}

func TestDraw_AdminRecordsHistoryAndSignature(t *testing.T) {
	s := NewService(newSession(t, true))

	first, err := s.Draw(seedFieldIDs, fiveExtras())
	require.NoError(t, err)
	assert.True(t, first.Recorded)
	assert.Equal(t, 1, first.Repeats)

	history, counts := s.History()
	require.NotEmpty(t, history)
	assert.Equal(t, first.Draw.ID, history[0].ID, "new draws are prepended")
	assert.Equal(t, 1, counts[first.Signature])

	// Same participant pool: same signature regardless of shuffle order.
	second, err := s.Draw(seedFieldIDs, fiveExtras())
	require.NoError(t, err)
	assert.Equal(t, first.Signature, second.Signature)
	assert.Equal(t, 2, second.Repeats)

	_, counts = s.History()
	assert.Equal(t, 2, counts[first.Signature])
}

func TestDraw_ViewerGetsResultWithoutRecording(t *testing.T) {
	s := NewService(newSession(t, false))

	result, err := s.Draw(seedFieldIDs, fiveExtras())
	require.NoError(t, err)
	assert.False(t, result.Recorded)

	history, counts := s.History()
	assert.Len(t, history, 1, "only the seed draw remains")
	assert.Empty(t, counts)
}
