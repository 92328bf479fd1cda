package admin

import (
	"crypto/subtle"
	"errors"

	"github.com/quintafc/team-sync/pkg/accessCode"
	"github.com/quintafc/team-sync/pkg/auth"
	"github.com/quintafc/team-sync/services/dashboard"
)

// ErrWrongPassword is returned when a login attempt fails.
var ErrWrongPassword = errors.New("senha incorreta")

// AdminService issues and revokes the admin capability for this instance.
// The password is a single shared secret; this gate is advisory access
// control, not a hardened authentication system.
type AdminService struct {
	password string
	registry *auth.Registry
	session  *dashboard.Session
}

func NewAdminService(password string, registry *auth.Registry, session *dashboard.Session) *AdminService {
	return &AdminService{
		password: password,
		registry: registry,
		session:  session,
	}
}

// Login upgrades the session to admin and returns a fresh access code for
// the mutating routes.
func (s *AdminService) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.session.PushToast(dashboard.Toast{Title: "Senha incorreta", Description: "Tente novamente", Variant: "destructive"})
		return "", ErrWrongPassword
	}

	code := accessCode.GenerateCode(auth.RoleAdmin)
	s.registry.Register(code, auth.RoleAdmin)
	s.session.SetAdmin(true)

	s.session.PushToast(dashboard.Toast{
		Title:       "Login realizado com sucesso",
		Description: "Modo administrador ativado - suas alterações serão sincronizadas",
	})
	return code, nil
}

// Logout revokes the code and drops the session back to viewer mode.
func (s *AdminService) Logout(code string) {
	s.registry.Revoke(code)
	s.session.SetAdmin(false)
	s.session.PushToast(dashboard.Toast{Title: "Logout realizado", Description: "Sessão encerrada"})
}

// ClearData wipes the shared document. The confirmation happened upstream.
func (s *AdminService) ClearData() error {
	return s.session.ClearData()
}

// ForceSync republishes the stored document to every subscriber.
func (s *AdminService) ForceSync() {
	s.session.ForceSync()
}
