package updates

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/quintafc/team-sync/pkg/log"
	updatesrepo "github.com/quintafc/team-sync/repos/updates"
	"github.com/quintafc/team-sync/services/dashboard"
)

// ErrMissingFields is returned when a publish request leaves a field blank.
var ErrMissingFields = errors.New("title, description and author are required")

// Service is the news-feed surface. Remote failures degrade to an empty list
// plus a toast; they never take the dashboard down.
type Service struct {
	repo    *updatesrepo.Service
	session *dashboard.Session
}

func NewService(repo *updatesrepo.Service, session *dashboard.Session) *Service {
	return &Service{repo: repo, session: session}
}

// List returns every update post, newest first. On any failure it substitutes
// an empty list and surfaces a toast.
func (s *Service) List(ctx context.Context) []updatesrepo.Update {
	posts, err := s.repo.List(ctx)
	if err != nil {
		if errors.Is(err, updatesrepo.ErrNotConfigured) {
			log.Logger.Warn("updates backend not configured, returning empty list")
			s.session.PushToast(dashboard.Toast{
				Title:       "Erro de configuração",
				Description: "O backend de atualizações não está configurado. Verifique as variáveis de ambiente.",
				Variant:     "destructive",
			})
		} else {
			log.Logger.Error("failed to load updates", zap.Error(err))
			s.session.PushToast(dashboard.Toast{
				Title:       "Erro ao carregar dados",
				Description: "Não foi possível carregar as atualizações. Verifique sua conexão.",
				Variant:     "destructive",
			})
		}
		return []updatesrepo.Update{}
	}
	if posts == nil {
		posts = []updatesrepo.Update{}
	}
	return posts
}

// Publish validates and inserts a new update post.
func (s *Service) Publish(ctx context.Context, request updatesrepo.PublishRequest) (*updatesrepo.Update, error) {
	if strings.TrimSpace(request.Title) == "" ||
		strings.TrimSpace(request.Description) == "" ||
		strings.TrimSpace(request.Author) == "" {
		return nil, ErrMissingFields
	}

	update, err := s.repo.Publish(ctx, request)
	if err != nil {
		if errors.Is(err, updatesrepo.ErrNotConfigured) {
			s.session.PushToast(dashboard.Toast{
				Title:       "Erro de configuração",
				Description: "O backend de atualizações não está configurado. Verifique as variáveis de ambiente.",
				Variant:     "destructive",
			})
		} else {
			log.Logger.Error("failed to publish update", zap.Error(err))
			s.session.PushToast(dashboard.Toast{
				Title:       "Erro ao salvar",
				Description: "Não foi possível salvar a atualização. Tente novamente.",
				Variant:     "destructive",
			})
		}
		return nil, err
	}

	s.session.PushToast(dashboard.Toast{
		Title:       "Atualização salva!",
		Description: "A atualização foi publicada com sucesso.",
	})
	return update, nil
}
