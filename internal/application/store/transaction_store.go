package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/domain/repository"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// TransactionStore almacén de ventas o de compras. Se instancia dos veces con
// clientes y snapshots distintos; la lógica es la misma.
type TransactionStore struct {
	kind entity.TransactionKind
	api  repository.TransactionAPI
	snap repository.TransactionSnapshot
	log  *logger.Logger

	mu      sync.Mutex
	loaded  bool
	loading bool
	items   []*entity.Transaction
}

func NewTransactionStore(kind entity.TransactionKind, api repository.TransactionAPI, snap repository.TransactionSnapshot, log *logger.Logger) *TransactionStore {
	return &TransactionStore{kind: kind, api: api, snap: snap, log: log}
}

// Kind tipo de transacción que maneja esta instancia.
func (s *TransactionStore) Kind() entity.TransactionKind {
	return s.kind
}

// Load trae las transacciones. Remoto primero; si la ruta no existe (el caso
// histórico de /compras) o el backend está caído, se usa el snapshot local.
func (s *TransactionStore) Load(ctx context.Context, force bool) error {
	s.mu.Lock()
	if s.loading || (s.loaded && !force) {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	list, err := s.api.FetchAll(ctx)
	switch {
	case err == nil:
		if err := s.snap.Save(list); err != nil {
			s.log.Warn().Err(err).Str("tipo", string(s.kind)).Msg("No se pudo refrescar el snapshot de transacciones")
		}
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Str("tipo", string(s.kind)).Msg("Ruta remota no disponible, usando snapshot local")
		var ok bool
		list, ok, err = s.snap.Load()
		if err != nil {
			return err
		}
		if !ok {
			list = nil
		}
	default:
		return err
	}

	s.mu.Lock()
	s.items = list
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// All devuelve una copia de las transacciones en memoria.
func (s *TransactionStore) All() []*entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// Persist registra una transacción ya compuesta: remoto si hay ruta, y siempre
// al snapshot local. El error de persistencia se propaga al compositor, que es
// quien decide deshacer los ajustes de inventario.
func (s *TransactionStore) Persist(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	created, err := s.api.Create(ctx, tx)
	switch {
	case err == nil:
		tx = created
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Str("tipo", string(s.kind)).Msg("Transacción registrada solo local")
	default:
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, tx)
	snapshot := make([]*entity.Transaction, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.snap.Save(snapshot); err != nil {
		// Revertir la lista en memoria para no divergir del snapshot.
		s.mu.Lock()
		if n := len(s.items); n > 0 && s.items[n-1] == tx {
			s.items = s.items[:n-1]
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("persistir %s: %w", s.kind, err)
	}
	return tx, nil
}
