package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/domain/repository"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// TerceroStore almacén de clientes y proveedores.
type TerceroStore struct {
	api      repository.TerceroAPI
	snap     repository.TerceroSnapshot
	validate *validator.Validate
	log      *logger.Logger

	mu      sync.Mutex
	loaded  bool
	loading bool
	items   []*entity.Tercero
}

func NewTerceroStore(api repository.TerceroAPI, snap repository.TerceroSnapshot, log *logger.Logger) *TerceroStore {
	return &TerceroStore{
		api:      api,
		snap:     snap,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Load trae los terceros, con el mismo guard y fallback que el catálogo.
func (s *TerceroStore) Load(ctx context.Context, force bool) error {
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

	list, err := s.api.FetchAll(ctx, "")
	switch {
	case err == nil:
		if err := s.snap.Save(list); err != nil {
			s.log.Warn().Err(err).Msg("No se pudo refrescar el snapshot de terceros")
		}
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Msg("Backend sin /clientes, usando snapshot local")
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

// All devuelve los terceros en memoria, opcionalmente filtrados por texto libre
// sobre nombre y número de documento.
func (s *TerceroStore) All(search string) []*entity.Tercero {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*entity.Tercero, 0, len(s.items))
	for _, t := range s.items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.NombreRazonSocial), needle) &&
			!strings.Contains(t.NumeroDocumento, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GetByID busca un tercero por id.
func (s *TerceroStore) GetByID(id string) (*entity.Tercero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *TerceroStore) fromRequest(id string, in dto.TerceroRequest) (*entity.Tercero, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	return &entity.Tercero{
		ID:                id,
		TipoTercero:       in.TipoTercero,
		NombreRazonSocial: strings.TrimSpace(in.NombreRazonSocial),
		TipoDocumento:     in.TipoDocumento,
		NumeroDocumento:   strings.TrimSpace(in.NumeroDocumento),
		CorreoElectronico: strings.TrimSpace(in.CorreoElectronico),
		Telefono:          strings.TrimSpace(in.Telefono),
	}, nil
}

// Create valida y registra un tercero. Dos terceros no pueden compartir tipo y
// número de documento.
func (s *TerceroStore) Create(ctx context.Context, in dto.TerceroRequest) (*entity.Tercero, error) {
	tercero, err := s.fromRequest(uuid.NewString(), in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, t := range s.items {
		if t.TipoDocumento == tercero.TipoDocumento && t.NumeroDocumento == tercero.NumeroDocumento {
			s.mu.Unlock()
			return nil, fmt.Errorf("ya existe un tercero con %s %s: %w",
				tercero.TipoDocumento, tercero.NumeroDocumento, domain.ErrDuplicate)
		}
	}
	s.mu.Unlock()

	created, err := s.api.Create(ctx, tercero)
	switch {
	case err == nil:
		tercero = created
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Msg("Alta de tercero solo local")
	default:
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, tercero)
	snapshot := make([]*entity.Tercero, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.snap.Save(snapshot); err != nil {
		// Revertir el alta en memoria para no divergir del snapshot.
		s.mu.Lock()
		if n := len(s.items); n > 0 && s.items[n-1] == tercero {
			s.items = s.items[:n-1]
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("persistir terceros: %w", err)
	}
	return tercero, nil
}

// Update valida y reemplaza un tercero existente.
func (s *TerceroStore) Update(ctx context.Context, id string, in dto.TerceroRequest) (*entity.Tercero, error) {
	tercero, err := s.fromRequest(id, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	idx := -1
	for i, t := range s.items {
		if t.ID == id {
			idx = i
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return nil, fmt.Errorf("tercero %s: %w", id, domain.ErrNotFound)
	}

	updated, err := s.api.Update(ctx, id, tercero)
	switch {
	case err == nil:
		tercero = updated
	case fallbackToLocal(err):
		s.log.Warn().Err(err).Msg("Edición de tercero solo local")
	default:
		return nil, err
	}

	s.mu.Lock()
	var prev *entity.Tercero
	for i, t := range s.items {
		if t.ID == id {
			prev = t
			s.items[i] = tercero
			break
		}
	}
	snapshot := make([]*entity.Tercero, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.snap.Save(snapshot); err != nil {
		// Restaurar la versión previa en memoria.
		s.mu.Lock()
		for i, t := range s.items {
			if t == tercero {
				s.items[i] = prev
				break
			}
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("persistir terceros: %w", err)
	}
	return tercero, nil
}

// Delete elimina un tercero.
func (s *TerceroStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, t := range s.items {
		if t.ID == id {
			idx = i
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return fmt.Errorf("tercero %s: %w", id, domain.ErrNotFound)
	}

	err := s.api.Delete(ctx, id)
	if err != nil && !fallbackToLocal(err) {
		return err
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("Baja de tercero solo local")
	}

	s.mu.Lock()
	prev := make([]*entity.Tercero, len(s.items))
	copy(prev, s.items)
	filtered := make([]*entity.Tercero, 0, len(s.items))
	for _, t := range s.items {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	s.items = filtered
	snapshot := make([]*entity.Tercero, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.snap.Save(snapshot); err != nil {
		// Restaurar la lista previa en memoria.
		s.mu.Lock()
		s.items = prev
		s.mu.Unlock()
		return fmt.Errorf("persistir terceros: %w", err)
	}
	return nil
}
