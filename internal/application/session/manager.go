// Package session maneja el ciclo de vida de la sesión contra el backend:
// login, consulta de la sesión vigente y logout. El token se persiste en el
// snapshot local para sobrevivir reinicios del gateway.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/domain/repository"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// Manager orquesta login, sesión vigente y logout.
type Manager struct {
	api      repository.AuthAPI
	store    repository.SessionStore
	validate *validator.Validate
	log      *logger.Logger
}

func NewManager(api repository.AuthAPI, store repository.SessionStore, log *logger.Logger) *Manager {
	return &Manager{
		api:      api,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Login autentica contra el backend y persiste la sesión emitida.
func (m *Manager) Login(ctx context.Context, in dto.LoginRequest) (*entity.Session, error) {
	if err := m.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}

	sess, err := m.api.Login(ctx, in.Correo, in.Password)
	if err != nil {
		return nil, err
	}
	if err := m.store.Put(sess); err != nil {
		return nil, fmt.Errorf("persistir sesión: %w", err)
	}
	m.log.Info().Str("correo", in.Correo).Msg("Sesión iniciada")
	return sess, nil
}

// Current devuelve la sesión vigente. Si el token guardado es un JWT con exp
// vencido se limpia de inmediato, sin esperar el 401 del backend. La firma no
// se verifica acá; eso es trabajo del backend.
func (m *Manager) Current() (*entity.Session, error) {
	sess, err := m.store.Get()
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token == "" {
		return nil, domain.ErrSessionExpired
	}

	if expired(sess.Token) {
		m.log.Debug().Msg("Token guardado ya venció, limpiando sesión")
		if err := m.store.Clear(); err != nil {
			return nil, err
		}
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// Logout descarta la sesión guardada. Es idempotente.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// expired revisa el claim exp sin verificar la firma. Un token que no parsea
// como JWT se trata como opaco y se deja pasar.
func expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
