package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

type fakeTerceroAPI struct {
	fetchErr error
	list     []*entity.Tercero
}

func (f *fakeTerceroAPI) FetchAll(ctx context.Context, search string) ([]*entity.Tercero, error) {
	return f.list, f.fetchErr
}
func (f *fakeTerceroAPI) GetByID(ctx context.Context, id string) (*entity.Tercero, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeTerceroAPI) Create(ctx context.Context, t *entity.Tercero) (*entity.Tercero, error) {
	return t, nil
}
func (f *fakeTerceroAPI) Update(ctx context.Context, id string, t *entity.Tercero) (*entity.Tercero, error) {
	return t, nil
}
func (f *fakeTerceroAPI) Delete(ctx context.Context, id string) error { return nil }

type fakeTerceroSnap struct {
	list    []*entity.Tercero
	saveErr error
}

func (f *fakeTerceroSnap) Load() ([]*entity.Tercero, bool, error) { return f.list, f.list != nil, nil }

func (f *fakeTerceroSnap) Save(list []*entity.Tercero) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.list = list
	return nil
}

func newTerceroStoreTest() *TerceroStore {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewTerceroStore(&fakeTerceroAPI{}, &fakeTerceroSnap{}, log)
}

func terceroValido() dto.TerceroRequest {
	return dto.TerceroRequest{
		TipoTercero:       "Cliente",
		NombreRazonSocial: "Comercial Andina S.A.C.",
		TipoDocumento:     "RUC",
		NumeroDocumento:   "20512345678",
		CorreoElectronico: "ventas@comercialandina.pe",
	}
}

func TestTerceroCreate_ValidacionDeclarativa(t *testing.T) {
	s := newTerceroStoreTest()

	casos := []func(*dto.TerceroRequest){
		func(r *dto.TerceroRequest) { r.TipoTercero = "Socio" },
		func(r *dto.TerceroRequest) { r.NombreRazonSocial = "ab" },
		func(r *dto.TerceroRequest) { r.TipoDocumento = "PASAPORTE" },
		func(r *dto.TerceroRequest) { r.NumeroDocumento = "123" },
		func(r *dto.TerceroRequest) { r.CorreoElectronico = "no-es-correo" },
	}
	for _, mutar := range casos {
		req := terceroValido()
		mutar(&req)
		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestTerceroCreate_DocumentoDuplicadoRechazado(t *testing.T) {
	s := newTerceroStoreTest()

	_, err := s.Create(context.Background(), terceroValido())
	require.NoError(t, err)

	otro := terceroValido()
	otro.NombreRazonSocial = "Otro nombre comercial"
	_, err = s.Create(context.Background(), otro)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "tipo y número de documento deben ser únicos")
}

func TestTerceroAll_FiltraPorTexto(t *testing.T) {
	s := newTerceroStoreTest()
	_, err := s.Create(context.Background(), terceroValido())
	require.NoError(t, err)

	proveedor := dto.TerceroRequest{
		TipoTercero:       "Proveedor",
		NombreRazonSocial: "Distribuidora del Sur",
		TipoDocumento:     "RUC",
		NumeroDocumento:   "20609876543",
	}
	_, err = s.Create(context.Background(), proveedor)
	require.NoError(t, err)

	assert.Len(t, s.All(""), 2)
	assert.Len(t, s.All("andina"), 1, "el filtro por nombre no distingue mayúsculas")
	assert.Len(t, s.All("20609"), 1, "también se filtra por número de documento")
	assert.Empty(t, s.All("zzz"))
}

func TestTercero_FallaDePersistenciaRevierteLaMemoria(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	snap := &fakeTerceroSnap{}
	s := NewTerceroStore(&fakeTerceroAPI{}, snap, log)

	creado, err := s.Create(context.Background(), terceroValido())
	require.NoError(t, err)

	snap.saveErr = errors.New("disco lleno")

	editado := terceroValido()
	editado.NombreRazonSocial = "Nombre que no debe quedar"
	_, err = s.Update(context.Background(), creado.ID, editado)
	require.Error(t, err)
	actual, getErr := s.GetByID(creado.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Comercial Andina S.A.C.", actual.NombreRazonSocial, "la edición fallida restaura la versión previa")

	err = s.Delete(context.Background(), creado.ID)
	require.Error(t, err)
	assert.Len(t, s.All(""), 1, "la baja fallida no queda aplicada en memoria")

	otro := terceroValido()
	otro.NumeroDocumento = "20698765432"
	_, err = s.Create(context.Background(), otro)
	require.Error(t, err)
	assert.Len(t, s.All(""), 1, "el alta fallida no queda en memoria")
}

func TestTerceroUpdateDelete_NoEncontrado(t *testing.T) {
	s := newTerceroStoreTest()

	_, err := s.Update(context.Background(), "no-existe", terceroValido())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
