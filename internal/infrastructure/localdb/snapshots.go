package localdb

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// loadList lee la lista completa guardada bajo una llave. Un blob corrupto se
// descarta y la llave se resiembra con los datos de ejemplo.
func loadList[T any](s *Store, log *logger.Logger, key string) ([]*T, bool, error) {
	raw, err := s.get(key)
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, nil
	}

	var list []*T
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Warn().Err(err).Str("llave", key).Msg("Snapshot local corrupto, se descarta y se resiembra")
		seed := seedFor(key)
		if err := s.put(key, seed); err != nil {
			return nil, false, err
		}
		if err := json.Unmarshal(seed, &list); err != nil {
			return nil, false, fmt.Errorf("datos de ejemplo inválidos para %s: %w", key, err)
		}
	}
	return list, true, nil
}

// saveList reemplaza la lista completa bajo una llave.
func saveList[T any](s *Store, key string, list []*T) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	return s.put(key, raw)
}

// ProductSnapshot snapshot local del catálogo de productos.
type ProductSnapshot struct {
	store *Store
	log   *logger.Logger
}

func NewProductSnapshot(store *Store, log *logger.Logger) *ProductSnapshot {
	return &ProductSnapshot{store: store, log: log}
}

func (r *ProductSnapshot) Load() ([]*entity.Product, bool, error) {
	return loadList[entity.Product](r.store, r.log, keyProductos)
}

func (r *ProductSnapshot) Save(list []*entity.Product) error {
	return saveList(r.store, keyProductos, list)
}

// TerceroSnapshot snapshot local de terceros.
type TerceroSnapshot struct {
	store *Store
	log   *logger.Logger
}

func NewTerceroSnapshot(store *Store, log *logger.Logger) *TerceroSnapshot {
	return &TerceroSnapshot{store: store, log: log}
}

func (r *TerceroSnapshot) Load() ([]*entity.Tercero, bool, error) {
	return loadList[entity.Tercero](r.store, r.log, keyTerceros)
}

func (r *TerceroSnapshot) Save(list []*entity.Tercero) error {
	return saveList(r.store, keyTerceros, list)
}

// TransactionSnapshot snapshot local de ventas o de compras según la llave.
type TransactionSnapshot struct {
	store *Store
	log   *logger.Logger
	key   string
}

// NewVentaSnapshot snapshot de ventas.
func NewVentaSnapshot(store *Store, log *logger.Logger) *TransactionSnapshot {
	return &TransactionSnapshot{store: store, log: log, key: keyVentas}
}

// NewCompraSnapshot snapshot de compras.
func NewCompraSnapshot(store *Store, log *logger.Logger) *TransactionSnapshot {
	return &TransactionSnapshot{store: store, log: log, key: keyCompras}
}

func (r *TransactionSnapshot) Load() ([]*entity.Transaction, bool, error) {
	return loadList[entity.Transaction](r.store, r.log, r.key)
}

func (r *TransactionSnapshot) Save(list []*entity.Transaction) error {
	return saveList(r.store, r.key, list)
}
