package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

type fakeAuthAPI struct {
	sess *entity.Session
	err  error
}

func (f *fakeAuthAPI) Login(ctx context.Context, correo, password string) (*entity.Session, error) {
	return f.sess, f.err
}

type fakeStore struct {
	sess *entity.Session
}

func (f *fakeStore) Get() (*entity.Session, error) { return f.sess, nil }
func (f *fakeStore) Put(s *entity.Session) error   { f.sess = s; return nil }
func (f *fakeStore) Clear() error                  { f.sess = nil; return nil }

func newManager(api *fakeAuthAPI, st *fakeStore) *Manager {
	return NewManager(api, st, logger.New(logger.Config{Env: "production", Level: "error"}))
}

func firmado(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := tok.SignedString([]byte("secreto-de-prueba"))
	require.NoError(t, err)
	return s
}

func TestLogin_ValidaCredenciales(t *testing.T) {
	m := newManager(&fakeAuthAPI{}, &fakeStore{})

	_, err := m.Login(context.Background(), dto.LoginRequest{Correo: "no-es-correo", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = m.Login(context.Background(), dto.LoginRequest{Correo: "ana@minierp.pe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la contraseña es obligatoria")
}

func TestLogin_PersisteLaSesion(t *testing.T) {
	st := &fakeStore{}
	m := newManager(&fakeAuthAPI{sess: &entity.Session{Token: "tok"}}, st)

	sess, err := m.Login(context.Background(), dto.LoginRequest{Correo: "ana@minierp.pe", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	require.NotNil(t, st.sess, "el login debe dejar la sesión guardada")
}

func TestCurrent_SinSesion(t *testing.T) {
	m := newManager(&fakeAuthAPI{}, &fakeStore{})

	_, err := m.Current()
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestCurrent_TokenVencidoSeLimpia(t *testing.T) {
	st := &fakeStore{sess: &entity.Session{Token: firmado(t, time.Now().Add(-time.Hour))}}
	m := newManager(&fakeAuthAPI{}, st)

	_, err := m.Current()
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Nil(t, st.sess, "un token vencido se descarta de inmediato")
}

func TestCurrent_TokenVigente(t *testing.T) {
	st := &fakeStore{sess: &entity.Session{Token: firmado(t, time.Now().Add(time.Hour))}}
	m := newManager(&fakeAuthAPI{}, st)

	sess, err := m.Current()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
}

func TestCurrent_TokenOpacoSeAcepta(t *testing.T) {
	st := &fakeStore{sess: &entity.Session{Token: "token-opaco-sin-formato-jwt"}}
	m := newManager(&fakeAuthAPI{}, st)

	sess, err := m.Current()
	require.NoError(t, err, "un token que no es JWT se trata como opaco")
	assert.Equal(t, "token-opaco-sin-formato-jwt", sess.Token)
}

func TestLogout_EsIdempotente(t *testing.T) {
	st := &fakeStore{sess: &entity.Session{Token: "tok"}}
	m := newManager(&fakeAuthAPI{}, st)

	require.NoError(t, m.Logout())
	require.NoError(t, m.Logout())
	assert.Nil(t, st.sess)
}
