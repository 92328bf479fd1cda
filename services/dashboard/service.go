package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samborkent/uuidv7"
	"go.uber.org/zap"

	"github.com/quintafc/team-sync/pkg/debounce"
	"github.com/quintafc/team-sync/pkg/log"
	timehelper "github.com/quintafc/team-sync/pkg/timeHelper"
	"github.com/quintafc/team-sync/repos/storage"
)

// ErrViewerMode is the declined-operation result every mutator returns while
// the session holds no admin capability.
var ErrViewerMode = errors.New("mutation declined: session is in viewer mode")

// ErrNotFound is returned when a mutation names a record that is not in the
// document.
var ErrNotFound = errors.New("record not found")

// Toast is a one-shot user-visible notification.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
	Time        string `json:"time"`
}

// Session is one instance's view of the shared document. It loads the store
// once at start, mirrors inbound updates, and, while it holds the admin
// capability, schedules a debounced write back on every local change.
type Session struct {
	store       *storage.Store
	broadcaster *storage.Broadcaster
	saveTask    *debounce.Task

	mu          sync.Mutex
	data        storage.AppData
	admin       bool
	online      bool
	lastSave    string // lastModified of this session's most recent write
	lastApplied string // lastModified of the last adopted document
	lastSync    string
	toasts      []Toast
	listenerID  int
	started     bool
}

func NewSession(store *storage.Store, broadcaster *storage.Broadcaster, saveDebounce time.Duration) *Session {
	s := &Session{
		store:       store,
		broadcaster: broadcaster,
		data:        seedData(),
		online:      true,
	}
	s.saveTask = debounce.NewTask(saveDebounce, s.doSave)
	return s
}

// Start loads the stored document if present (seed data stays otherwise),
// subscribes to the broadcaster, and forces one initial sync.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true

	if saved, ok := s.store.Load(); ok {
		s.data = saved
		s.lastApplied = saved.LastModified
		s.lastSync = saved.LastModified
	}
	s.mu.Unlock()

	s.listenerID = s.broadcaster.AddListener(s.handleUpdate)
	s.broadcaster.ForceSync()
}

// Stop unsubscribes and discards any pending debounced write. An edit made
// inside the debounce window right before Stop is lost.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	s.saveTask.Stop()
	s.broadcaster.RemoveListener(s.listenerID)
}

// SetAdmin flips the session's role. Granting the capability is the caller's
// responsibility; within the client this gate is advisory.
func (s *Session) SetAdmin(admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
}

func (s *Session) Admin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

// handleUpdate applies an inbound document. An echo of this session's own
// write is discarded, as is anything not strictly newer than the last adopted
// document (last write wins).
func (s *Session) handleUpdate(data storage.AppData) {
	s.mu.Lock()

	if data.LastModified == s.lastSave {
		s.mu.Unlock()
		return
	}
	if s.lastApplied != "" && !laterTimestamp(data.LastModified, s.lastApplied) {
		s.mu.Unlock()
		return
	}

	s.data = data
	s.lastApplied = data.LastModified
	s.lastSync = data.LastModified
	s.online = true
	viewer := !s.admin
	s.mu.Unlock()

	log.Logger.Info("adopted shared document", zap.String("lastModified", data.LastModified))

	if viewer {
		s.PushToast(Toast{
			Title:       "Dados atualizados",
			Description: fmt.Sprintf("Última modificação: %s", data.LastModified),
		})
	}
}

// laterTimestamp reports whether a is chronologically after b. RFC3339Nano
// trims trailing fractional zeros, so two encodings of the same instant can
// differ in width; a lexical compare would order them wrong. Unparseable
// values fall back to the lexical compare.
func laterTimestamp(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}

func (s *Session) scheduleSave() {
	s.saveTask.Trigger()
}

func (s *Session) doSave() {
	s.mu.Lock()
	if !s.admin {
		s.mu.Unlock()
		log.Logger.Info("save declined: not admin")
		return
	}
	snapshot := s.data.Clone()
	snapshot.LastBackup = timehelper.Timestamp(time.Now())
	s.mu.Unlock()

	saved, err := s.store.Save(snapshot)

	s.mu.Lock()
	if err != nil {
		s.online = false
		s.mu.Unlock()
		log.Logger.Error("failed to save shared document", zap.Error(err))
		s.PushToast(Toast{Title: "Erro ao salvar", Description: "Verifique sua conexão", Variant: "destructive"})
		return
	}
	s.data = saved
	s.online = true
	s.lastSave = saved.LastModified
	s.lastApplied = saved.LastModified
	s.lastSync = saved.LastModified
	s.mu.Unlock()

	s.broadcaster.Publish(saved)
	s.PushToast(Toast{Title: "Dados salvos", Description: fmt.Sprintf("Sincronizado em %s", saved.LastModified)})
}

// FlushPendingSave runs a scheduled save immediately. Test hook; the normal
// path goes through the debounce delay.
func (s *Session) FlushPendingSave() {
	s.saveTask.Flush()
}

// requireAdmin must be called with the lock held.
func (s *Session) requireAdmin() error {
	if !s.admin {
		log.Logger.Info("mutation declined: session is viewer")
		return ErrViewerMode
	}
	return nil
}

func (s *Session) AddMember(name string, monthlyPayment float64, goalkeeper bool) (*storage.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	member := storage.TeamMember{
		ID:             uuidv7.New().String(),
		Name:           name,
		MonthlyPayment: monthlyPayment,
		PaymentStatus:  map[string]bool{},
		Absences:       []storage.Absence{},
	}
	if goalkeeper {
		v := true
		member.IsGoalkeeper = &v
	}
	s.data.Members = append(s.data.Members, member)
	s.scheduleSave()

	s.appendToastLocked(Toast{Title: "Membro adicionado", Description: fmt.Sprintf("%s foi adicionado e sincronizado", member.Name)})
	return &member, nil
}

func (s *Session) UpdateMemberPayment(memberID string, monthlyPayment float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	for i := range s.data.Members {
		if s.data.Members[i].ID == memberID {
			s.data.Members[i].MonthlyPayment = monthlyPayment
			s.scheduleSave()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Session) SetPaymentStatus(memberID, month string, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	for i := range s.data.Members {
		if s.data.Members[i].ID == memberID {
			if s.data.Members[i].PaymentStatus == nil {
				s.data.Members[i].PaymentStatus = map[string]bool{}
			}
			s.data.Members[i].PaymentStatus[month] = paid
			s.scheduleSave()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Session) AddAbsence(memberID, date, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if reason == "" {
		reason = "Não informado"
	}

	for i := range s.data.Members {
		if s.data.Members[i].ID == memberID {
			s.data.Members[i].Absences = append(s.data.Members[i].Absences, storage.Absence{Date: date, Reason: reason})
			s.scheduleSave()
			s.appendToastLocked(Toast{Title: "Falta registrada", Description: "Informação sincronizada com todos os usuários"})
			return nil
		}
	}
	return ErrNotFound
}

func (s *Session) RemoveAbsence(memberID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	for i := range s.data.Members {
		if s.data.Members[i].ID != memberID {
			continue
		}
		kept := s.data.Members[i].Absences[:0]
		for _, a := range s.data.Members[i].Absences {
			if a.Date != date {
				kept = append(kept, a)
			}
		}
		s.data.Members[i].Absences = kept
		s.scheduleSave()
		return nil
	}
	return ErrNotFound
}

func (s *Session) AddEvent(title, date, eventType, description string) (*storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	event := storage.Event{
		ID:          uuidv7.New().String(),
		Title:       title,
		Date:        date,
		Type:        eventType,
		Description: description,
	}
	s.data.Events = append(s.data.Events, event)
	s.scheduleSave()

	s.appendToastLocked(Toast{Title: "Evento criado", Description: fmt.Sprintf("%s foi adicionado e sincronizado", event.Title)})
	return &event, nil
}

func (s *Session) RemoveEvent(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	kept := s.data.Events[:0]
	for _, e := range s.data.Events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	s.data.Events = kept
	s.scheduleSave()
	return nil
}

func (s *Session) AddCashEntry(playerName string, amount float64, date, description string) (*storage.CashEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if description == "" {
		description = "Jogo avulso"
	}

	entry := storage.CashEntry{
		ID:          uuidv7.New().String(),
		PlayerName:  playerName,
		Amount:      amount,
		Date:        date,
		Description: description,
	}
	s.data.CashEntries = append(s.data.CashEntries, entry)
	s.scheduleSave()
	return &entry, nil
}

func (s *Session) RemoveCashEntry(entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	kept := s.data.CashEntries[:0]
	for _, e := range s.data.CashEntries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	s.data.CashEntries = kept
	s.scheduleSave()
	return nil
}

func (s *Session) AddExtraPlayer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}
	s.data.ExtraPlayers = append(s.data.ExtraPlayers, name)
	s.scheduleSave()
	return nil
}

func (s *Session) RemoveExtraPlayer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	kept := s.data.ExtraPlayers[:0]
	for _, p := range s.data.ExtraPlayers {
		if p != name {
			kept = append(kept, p)
		}
	}
	s.data.ExtraPlayers = kept
	s.scheduleSave()
	return nil
}

// RecordDraw prepends a draw to the history (newest first) and bumps the
// signature counter.
func (s *Session) RecordDraw(draw storage.TeamDraw, signature string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	s.data.DrawHistory = append([]storage.TeamDraw{draw}, s.data.DrawHistory...)
	if s.data.TeamDrawCounts == nil {
		s.data.TeamDrawCounts = map[string]int{}
	}
	s.data.TeamDrawCounts[signature]++
	s.scheduleSave()

	s.appendToastLocked(Toast{Title: "Times sorteados!", Description: "Resultado sincronizado com todos os usuários"})
	return nil
}

// Export serializes the current document for download.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	snapshot := s.data.Clone()
	s.mu.Unlock()

	snapshot.LastBackup = timehelper.Timestamp(time.Now())
	return json.MarshalIndent(snapshot, "", "  ")
}

// ImportData adopts every top-level collection of an exported document
// independently. A missing field falls back to its empty default, never to
// the seed data. A document that fails to parse is rejected whole.
func (s *Session) ImportData(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	var imported storage.AppData
	if err := json.Unmarshal(raw, &imported); err != nil {
		s.appendToastLocked(Toast{Title: "Erro ao importar dados", Description: "Arquivo inválido", Variant: "destructive"})
		return fmt.Errorf("invalid backup file: %w", err)
	}

	if imported.Members == nil {
		imported.Members = []storage.TeamMember{}
	}
	if imported.Events == nil {
		imported.Events = []storage.Event{}
	}
	if imported.CashEntries == nil {
		imported.CashEntries = []storage.CashEntry{}
	}
	if imported.ExtraPlayers == nil {
		imported.ExtraPlayers = []string{}
	}
	if imported.DrawHistory == nil {
		imported.DrawHistory = []storage.TeamDraw{}
	}
	if imported.TeamDrawCounts == nil {
		imported.TeamDrawCounts = map[string]int{}
	}

	s.data.Members = imported.Members
	s.data.Events = imported.Events
	s.data.CashEntries = imported.CashEntries
	s.data.ExtraPlayers = imported.ExtraPlayers
	s.data.DrawHistory = imported.DrawHistory
	s.data.TeamDrawCounts = imported.TeamDrawCounts
	s.scheduleSave()

	s.appendToastLocked(Toast{Title: "Dados importados com sucesso", Description: "Backup restaurado e sincronizado"})
	return nil
}

// ClearData removes the stored document and resets the mirror to seed data.
// Irreversible; confirmation happens upstream.
func (s *Session) ClearData() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireAdmin(); err != nil {
		return err
	}

	s.saveTask.Stop()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.data = seedData()
	s.lastSave = ""
	s.lastApplied = ""
	s.lastSync = ""

	s.appendToastLocked(Toast{Title: "Dados compartilhados limpos"})
	return nil
}

// ForceSync republishes the stored document on demand.
func (s *Session) ForceSync() {
	s.broadcaster.ForceSync()
	s.PushToast(Toast{Title: "Sincronização forçada", Description: "Dados atualizados manualmente"})
}

// Snapshot returns a copy of the current document.
func (s *Session) Snapshot() storage.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Status describes the session for the dashboard header.
type Status struct {
	Admin        bool   `json:"admin"`
	Online       bool   `json:"online"`
	LastSync     string `json:"lastSync"`
	LastBackup   string `json:"lastBackup"`
	CurrentMonth string `json:"currentMonth"`
	HasData      bool   `json:"hasData"`
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Admin:        s.admin,
		Online:       s.online,
		LastSync:     s.lastSync,
		LastBackup:   s.data.LastBackup,
		CurrentMonth: timehelper.MonthKey(time.Now()),
		HasData:      s.store.Exists(),
	}
}

func (s *Session) PushToast(t Toast) {
	s.mu.Lock()
	s.appendToastLocked(t)
	s.mu.Unlock()
}

func (s *Session) appendToastLocked(t Toast) {
	t.Time = timehelper.Timestamp(time.Now())
	s.toasts = append(s.toasts, t)
	if len(s.toasts) > 50 {
		s.toasts = s.toasts[len(s.toasts)-50:]
	}
}

// Toasts drains the pending notifications.
func (s *Session) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.toasts
	s.toasts = nil
	return out
}
