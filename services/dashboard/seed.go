package dashboard

import (
	"github.com/xorcare/pointer"

	"github.com/quintafc/team-sync/repos/storage"
)

// seedData is the built-in document a fresh instance starts from. It is never
// written to the store until the first admin mutation.
func seedData() storage.AppData {
	return storage.AppData{
		Members: []storage.TeamMember{
			{
				ID:             "1",
				Name:           "Kaio Gabriel",
				MonthlyPayment: 150,
				PaymentStatus:  map[string]bool{"2024-01": true, "2024-02": false, "2024-03": false},
				Absences: []storage.Absence{
					{Date: "2024-03-06", Reason: "Trabalho"},
					{Date: "2024-03-13", Reason: "Doente"},
				},
				IsGoalkeeper: pointer.Bool(true),
			},
			{
				ID:             "2",
				Name:           "Lucas Henrique",
				MonthlyPayment: 150,
				PaymentStatus:  map[string]bool{"2024-01": true, "2024-02": true, "2024-03": false},
				Absences:       []storage.Absence{{Date: "2024-02-28", Reason: "Viagem"}},
			},
			{
				ID:             "3",
				Name:           "Gabriel Cardoso",
				MonthlyPayment: 150,
				PaymentStatus:  map[string]bool{"2024-01": false, "2024-02": true, "2024-03": true},
				Absences:       []storage.Absence{},
				IsGoalkeeper:   pointer.Bool(true),
			},
			{
				ID:             "4",
				Name:           "Gustavo Silva",
				MonthlyPayment: 150,
				PaymentStatus:  map[string]bool{"2024-01": true, "2024-02": false, "2024-03": true},
				Absences: []storage.Absence{
					{Date: "2024-01-17", Reason: "Compromisso familiar"},
					{Date: "2024-02-07", Reason: "Doente"},
					{Date: "2024-03-20", Reason: "Trabalho"},
				},
			},
			{
				ID:             "5",
				Name:           "Bruno Barroso",
				MonthlyPayment: 150,
				PaymentStatus:  map[string]bool{"2024-01": true, "2024-02": true, "2024-03": false},
				Absences:       []storage.Absence{{Date: "2024-02-14", Reason: "Viagem"}},
			},
		},
		Events: []storage.Event{
			{
				ID:          "1",
				Title:       "Churrasco de Fim de Ano",
				Date:        "2024-12-20",
				Type:        "churrasco",
				Description: "Churrasco para celebrar o fim do ano com a equipe",
			},
			{
				ID:          "2",
				Title:       "Confraternização de Aniversário",
				Date:        "2024-04-15",
				Type:        "confraternizacao",
				Description: "Comemoração dos aniversários do trimestre",
			},
		},
		DrawHistory: []storage.TeamDraw{
			{
				ID:          "1",
				Date:        "2024-03-01",
				TeamA:       []string{"Lucas Henrique", "Bruno Barroso", "Jogador Extra 1", "Jogador Extra 2"},
				TeamB:       []string{"Gustavo Silva", "Jogador Extra 4", "Jogador Extra 5", "Jogador Extra 6"},
				Goalkeepers: []string{"Kaio Gabriel", "Gabriel Cardoso"},
			},
		},
		CashEntries: []storage.CashEntry{
			{
				ID:          "1",
				PlayerName:  "João Silva",
				Amount:      15,
				Date:        "2024-03-15",
				Description: "Jogo avulso",
			},
		},
		ExtraPlayers: []string{
			"Jogador Extra 1",
			"Jogador Extra 2",
			"Jogador Extra 3",
			"Jogador Extra 4",
			"Jogador Extra 5",
			"Jogador Extra 6",
			"Jogador Extra 7",
		},
		TeamDrawCounts: map[string]int{},
	}
}
