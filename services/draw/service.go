package draw

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/samborkent/uuidv7"

	timehelper "github.com/quintafc/team-sync/pkg/timeHelper"
	"github.com/quintafc/team-sync/repos/storage"
	"github.com/quintafc/team-sync/services/dashboard"
)

const (
	teamSize     = 4
	fieldNeeded  = 2 * teamSize
	keeperNeeded = 2
)

var (
	ErrNotEnoughFieldPlayers = errors.New("not enough field players for a draw")
	ErrNotEnoughGoalkeepers  = errors.New("not enough goalkeepers for a draw")
)

// Service runs the team lottery against the shared document.
type Service struct {
	session *dashboard.Session
}

func NewService(session *dashboard.Session) *Service {
	return &Service{session: session}
}

// Result is one lottery outcome. Recorded reports whether it was written to
// the shared history, which only happens for admin sessions.
type Result struct {
	Draw      storage.TeamDraw `json:"draw"`
	Signature string           `json:"signature"`
	Repeats   int              `json:"repeats"`
	Recorded  bool             `json:"recorded"`
}

// Draw partitions the selected field players into two teams of four by an
// unseeded shuffle and assigns the shuffled goalkeepers, the first two tending
// goal for team A and team B. It rejects the operation, mutating nothing, when
// fewer than eight field players are selected or fewer than two
// goalkeeper-flagged members exist.
func (s *Service) Draw(memberIDs []string, extraPlayers []string) (*Result, error) {
	data := s.session.Snapshot()

	selected := map[string]bool{}
	for _, id := range memberIDs {
		selected[id] = true
	}

	var fieldPlayers []string
	var goalkeepers []string
	for _, m := range data.Members {
		if m.Goalkeeper() {
			goalkeepers = append(goalkeepers, m.Name)
			continue
		}
		if selected[m.ID] {
			fieldPlayers = append(fieldPlayers, m.Name)
		}
	}
	fieldPlayers = append(fieldPlayers, extraPlayers...)

	if len(fieldPlayers) < fieldNeeded {
		return nil, fmt.Errorf("%w: precisamos de %d jogadores de linha, temos apenas %d",
			ErrNotEnoughFieldPlayers, fieldNeeded, len(fieldPlayers))
	}
	if len(goalkeepers) < keeperNeeded {
		return nil, fmt.Errorf("%w: precisamos de %d goleiros", ErrNotEnoughGoalkeepers, keeperNeeded)
	}

	shuffledField := append([]string(nil), fieldPlayers...)
	rand.Shuffle(len(shuffledField), func(i, j int) {
		shuffledField[i], shuffledField[j] = shuffledField[j], shuffledField[i]
	})
	shuffledKeepers := append([]string(nil), goalkeepers...)
	rand.Shuffle(len(shuffledKeepers), func(i, j int) {
		shuffledKeepers[i], shuffledKeepers[j] = shuffledKeepers[j], shuffledKeepers[i]
	})

	teamDraw := storage.TeamDraw{
		ID:          uuidv7.New().String(),
		Date:        timehelper.GetTodaysDateString(),
		TeamA:       shuffledField[:teamSize],
		TeamB:       shuffledField[teamSize : 2*teamSize],
		Goalkeepers: shuffledKeepers,
	}
	sig := signature(teamDraw)

	result := &Result{
		Draw:      teamDraw,
		Signature: sig,
		Repeats:   data.TeamDrawCounts[sig],
	}

	if err := s.session.RecordDraw(teamDraw, sig); err == nil {
		result.Recorded = true
		result.Repeats++
	} else if !errors.Is(err, dashboard.ErrViewerMode) {
		return nil, err
	}

	return result, nil
}

// signature is the canonical sorted comma-joined list of every drawn
// participant, used to count repeat draws.
func signature(d storage.TeamDraw) string {
	names := make([]string, 0, len(d.TeamA)+len(d.TeamB)+len(d.Goalkeepers))
	names = append(names, d.TeamA...)
	names = append(names, d.TeamB...)
	names = append(names, d.Goalkeepers...)
	sort.Strings(names)
	return strings.Join(names, ",")
}

// History returns the recorded draws, newest first, with the repeat counters.
func (s *Service) History() ([]storage.TeamDraw, map[string]int) {
	data := s.session.Snapshot()
	return data.DrawHistory, data.TeamDrawCounts
}
