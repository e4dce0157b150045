// Package store implementa los almacenes de entidades del gateway: una copia en
// memoria por tipo, alimentada del backend cuando responde y del snapshot local
// cuando la ruta no existe o el backend está caído. Las mutaciones persisten la
// lista completa al snapshot.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/domain/repository"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// TopicProductoActualizado evento publicado cada vez que un producto cambia
// (alta o ajuste de stock). El payload es el producto ya actualizado.
const TopicProductoActualizado = "producto:actualizado"

// fallbackToLocal decide si un error remoto habilita el snapshot local:
// la ruta no existe en el backend, o el backend no responde.
func fallbackToLocal(err error) bool {
	return errors.Is(err, domain.ErrRouteNotImplemented) || errors.Is(err, domain.ErrBackendUnavailable)
}

// ProductStore almacén del catálogo de productos.
type ProductStore struct {
	api  repository.ProductAPI
	snap repository.ProductSnapshot
	bus  EventBus.Bus
	log  *logger.Logger

	mu      sync.Mutex
	loaded  bool
	loading bool
	items   []*entity.Product
}

func NewProductStore(api repository.ProductAPI, snap repository.ProductSnapshot, bus EventBus.Bus, log *logger.Logger) *ProductStore {
	return &ProductStore{api: api, snap: snap, bus: bus, log: log}
}

// Load trae el catálogo. Si ya está cargado y force es false no hace nada, y una
// carga en curso no se duplica: el segundo caller vuelve de inmediato.
func (s *ProductStore) Load(ctx context.Context, force bool) error {
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
		// Una lectura remota exitosa refresca el snapshot local.
		if err := s.snap.Save(list); err != nil {
			s.log.Warn().Err(err).Msg("No se pudo refrescar el snapshot de productos")
		}
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Msg("Backend sin /productos, usando snapshot local")
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

// All devuelve una copia de la lista en memoria.
func (s *ProductStore) All() []*entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Product, len(s.items))
	copy(out, s.items)
	return out
}

// GetByID busca un producto por id. Devuelve ErrNotFound si no está.
func (s *ProductStore) GetByID(id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create valida y registra un producto nuevo. Si el backend tiene la ruta se
// crea allá primero; si no, el alta queda solo en el snapshot local.
func (s *ProductStore) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	nombre := strings.TrimSpace(in.Nombre)
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if nombre == "" || sku == "" {
		return nil, fmt.Errorf("nombre y SKU son obligatorios: %w", domain.ErrInvalidInput)
	}
	if in.Precio.IsNegative() {
		return nil, fmt.Errorf("el precio no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("el stock inicial no puede ser negativo: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	for _, p := range s.items {
		if strings.EqualFold(p.SKU, sku) {
			s.mu.Unlock()
			return nil, fmt.Errorf("ya existe un producto con SKU %s: %w", sku, domain.ErrDuplicate)
		}
	}
	s.mu.Unlock()

	producto := &entity.Product{
		ID:    uuid.NewString(),
		SKU:   sku,
		Name:  nombre,
		Price: in.Precio.Round(2),
		Stock: in.Stock,
	}

	created, err := s.api.Create(ctx, producto)
	switch {
	case err == nil:
		producto = created
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Str("sku", sku).Msg("Alta de producto solo local")
	default:
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, producto)
	snapshot := make([]*entity.Product, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.snap.Save(snapshot); err != nil {
		// Revertir el alta en memoria para no divergir del snapshot.
		s.mu.Lock()
		if n := len(s.items); n > 0 && s.items[n-1] == producto {
			s.items = s.items[:n-1]
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("persistir catálogo: %w", err)
	}
	s.bus.Publish(TopicProductoActualizado, producto)
	return producto, nil
}

// AdjustStock aplica un delta de inventario. El stock nunca queda negativo y un
// delta cero no es un ajuste.
func (s *ProductStore) AdjustStock(id string, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("el ajuste debe ser distinto de cero: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	var target *entity.Product
	for _, p := range s.items {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if target.Stock+delta < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("producto %s con stock %d no admite delta %d: %w",
			target.SKU, target.Stock, delta, domain.ErrInsufficientStock)
	}
	target.Stock += delta
	clone := *target
	snapshot := make([]*entity.Product, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.snap.Save(snapshot); err != nil {
		// Revertir el ajuste en memoria: el stock debe volver a su valor previo
		// cuando la persistencia falla.
		s.mu.Lock()
		target.Stock -= delta
		s.mu.Unlock()
		return nil, fmt.Errorf("persistir catálogo: %w", err)
	}
	s.bus.Publish(TopicProductoActualizado, &clone)
	return &clone, nil
}

// Subscribe registra un handler para los cambios de producto.
func (s *ProductStore) Subscribe(fn func(*entity.Product)) error {
	return s.bus.Subscribe(TopicProductoActualizado, fn)
}

// Unsubscribe da de baja un handler registrado con Subscribe.
func (s *ProductStore) Unsubscribe(fn func(*entity.Product)) error {
	return s.bus.Unsubscribe(TopicProductoActualizado, fn)
}
