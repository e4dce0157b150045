package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

type fakeTxAPI struct {
	fetchErr  error
	fetchList []*entity.Transaction
	createErr error
}

func (f *fakeTxAPI) FetchAll(ctx context.Context) ([]*entity.Transaction, error) {
	return f.fetchList, f.fetchErr
}

func (f *fakeTxAPI) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return tx, nil
}

type fakeTxSnap struct {
	list    []*entity.Transaction
	saveErr error
}

func (f *fakeTxSnap) Load() ([]*entity.Transaction, bool, error) { return f.list, f.list != nil, nil }
func (f *fakeTxSnap) Save(list []*entity.Transaction) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.list = list
	return nil
}

func newTxStore(api *fakeTxAPI, snap *fakeTxSnap) *TransactionStore {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewTransactionStore(entity.KindPurchase, api, snap, log)
}

func TestTransactionLoad_RutaFaltanteUsaSnapshot(t *testing.T) {
	api := &fakeTxAPI{fetchErr: domain.ErrRouteNotImplemented}
	snap := &fakeTxSnap{list: []*entity.Transaction{{ID: "c1", Total: decimal.NewFromInt(100)}}}
	s := newTxStore(api, snap)

	require.NoError(t, s.Load(context.Background(), false))
	require.Len(t, s.All(), 1)
	assert.Equal(t, "c1", s.All()[0].ID)
}

func TestPersist_RutaFaltanteGuardaSoloLocal(t *testing.T) {
	api := &fakeTxAPI{createErr: domain.ErrRouteNotImplemented}
	snap := &fakeTxSnap{}
	s := newTxStore(api, snap)

	tx := &entity.Transaction{ID: "c2", Total: decimal.NewFromInt(50)}
	out, err := s.Persist(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, "c2", out.ID)
	require.Len(t, snap.list, 1, "la transacción debe quedar en el snapshot local")
}

func TestPersist_ErrorRealDelBackendSePropaga(t *testing.T) {
	api := &fakeTxAPI{createErr: domain.NewAPIError(500, "boom")}
	s := newTxStore(api, &fakeTxSnap{})

	_, err := s.Persist(context.Background(), &entity.Transaction{ID: "c3"})
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, s.All(), "una persistencia fallida no debe quedar en memoria")
}

func TestPersist_FalloDelSnapshotRevierteLaMemoria(t *testing.T) {
	api := &fakeTxAPI{createErr: domain.ErrBackendUnavailable}
	snap := &fakeTxSnap{saveErr: errors.New("disco lleno")}
	s := newTxStore(api, snap)

	_, err := s.Persist(context.Background(), &entity.Transaction{ID: "c4"})
	require.Error(t, err)
	assert.Empty(t, s.All(), "si el snapshot falla la lista en memoria vuelve atrás")
}
