package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/quintafc/team-sync/pkg/log"
	timehelper "github.com/quintafc/team-sync/pkg/timeHelper"
)

// SharedStorageFile is the single well-known key the whole document lives
// under. The v2 suffix matches the current document shape.
const SharedStorageFile = "team-dashboard-shared-v2.json"

// Store persists the shared document as one JSON file inside the data
// directory. All instances on the same machine point at the same file.
type Store struct {
	path  string
	clock func() time.Time
}

func NewStore(dataDir string) *Store {
	return NewStoreWithClock(dataDir, time.Now)
}

func NewStoreWithClock(dataDir string, clock func() time.Time) *Store {
	return &Store{
		path:  filepath.Join(dataDir, SharedStorageFile),
		clock: clock,
	}
}

// Path returns the file the document is stored at.
func (s *Store) Path() string {
	return s.path
}

// Save stamps lastModified and version on the document, persists it, and
// returns the stamped copy. The write is temp-file + rename so a reader never
// observes a torn document.
func (s *Store) Save(data AppData) (AppData, error) {
	now := s.clock()
	data.LastModified = timehelper.Timestamp(now)
	data.Version = now.UnixMilli()

	raw, err := json.Marshal(data)
	if err != nil {
		return AppData{}, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return AppData{}, err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return AppData{}, err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return AppData{}, err
	}

	return data, nil
}

// Load reads the stored document. Missing or malformed content is reported as
// absent, never as an error the caller has to handle.
func (s *Store) Load() (AppData, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return AppData{}, false
	}

	var data AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Logger.Warn("stored document is malformed, treating as absent", zap.Error(err))
		return AppData{}, false
	}
	return data, true
}

// Exists reports whether the storage key is present, valid or not.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Clear removes the stored document entirely. Irreversible; confirmation is
// the caller's job.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
