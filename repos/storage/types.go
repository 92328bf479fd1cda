package storage

// AppData is the one shared document holding all dashboard state. Every write
// replaces it wholesale; there is no partial update path.
type AppData struct {
	Members        []TeamMember   `json:"members"`
	Events         []Event        `json:"events"`
	DrawHistory    []TeamDraw     `json:"drawHistory"`
	CashEntries    []CashEntry    `json:"cashEntries"`
	ExtraPlayers   []string       `json:"extraPlayers"`
	TeamDrawCounts map[string]int `json:"teamDrawCounts"`
	LastBackup     string         `json:"lastBackup"`
	LastModified   string         `json:"lastModified"`
	Version        int64          `json:"version"`
}

type TeamMember struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	MonthlyPayment float64         `json:"monthlyPayment"`
	PaymentStatus  map[string]bool `json:"paymentStatus"`
	Absences       []Absence       `json:"absences"`
	IsGoalkeeper   *bool           `json:"isGoalkeeper,omitempty"`
}

// Goalkeeper reports the flag with the absent case treated as false.
func (m TeamMember) Goalkeeper() bool {
	return m.IsGoalkeeper != nil && *m.IsGoalkeeper
}

type Absence struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type TeamDraw struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	TeamA       []string `json:"teamA"`
	TeamB       []string `json:"teamB"`
	Goalkeepers []string `json:"goalkeepers"`
}

type CashEntry struct {
	ID          string  `json:"id"`
	PlayerName  string  `json:"playerName"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// Clone deep-copies the document so callers can hand out snapshots without
// sharing mutable slices and maps.
func (d AppData) Clone() AppData {
	out := d
	out.Members = make([]TeamMember, len(d.Members))
	for i, m := range d.Members {
		cm := m
		cm.PaymentStatus = make(map[string]bool, len(m.PaymentStatus))
		for k, v := range m.PaymentStatus {
			cm.PaymentStatus[k] = v
		}
		cm.Absences = append([]Absence(nil), m.Absences...)
		if m.IsGoalkeeper != nil {
			v := *m.IsGoalkeeper
			cm.IsGoalkeeper = &v
		}
		out.Members[i] = cm
	}
	out.Events = append([]Event(nil), d.Events...)
	out.CashEntries = append([]CashEntry(nil), d.CashEntries...)
	out.ExtraPlayers = append([]string(nil), d.ExtraPlayers...)
	out.DrawHistory = make([]TeamDraw, len(d.DrawHistory))
	for i, t := range d.DrawHistory {
		ct := t
		ct.TeamA = append([]string(nil), t.TeamA...)
		ct.TeamB = append([]string(nil), t.TeamB...)
		ct.Goalkeepers = append([]string(nil), t.Goalkeepers...)
		out.DrawHistory[i] = ct
	}
	out.TeamDrawCounts = make(map[string]int, len(d.TeamDrawCounts))
	for k, v := range d.TeamDrawCounts {
		out.TeamDrawCounts[k] = v
	}
	return out
}
