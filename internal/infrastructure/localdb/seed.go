package localdb

import (
	_ "embed"
	"fmt"

	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// Datos de ejemplo embebidos. Se usan cuando el snapshot local está vacío o cuando
// un blob guardado resulta corrupto y hay que descartarlo.
var (
	//go:embed fixtures/productos.json
	seedProductos []byte
	//go:embed fixtures/terceros.json
	seedTerceros []byte
	//go:embed fixtures/ventas.json
	seedVentas []byte
	//go:embed fixtures/compras.json
	seedCompras []byte
)

func seedFor(key string) []byte {
	switch key {
	case keyProductos:
		return seedProductos
	case keyTerceros:
		return seedTerceros
	case keyVentas:
		return seedVentas
	case keyCompras:
		return seedCompras
	}
	return []byte("[]")
}

// EnsureSeed siembra las llaves de entidad que aún no existen en el archivo local.
// No toca llaves ya escritas ni las llaves de sesión.
func (s *Store) EnsureSeed(log *logger.Logger) error {
	for _, key := range []string{keyProductos, keyTerceros, keyVentas, keyCompras} {
		existing, err := s.get(key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.put(key, seedFor(key)); err != nil {
			return fmt.Errorf("sembrar %s: %w", key, err)
		}
		log.Info().Str("llave", key).Msg("Snapshot local sembrado con datos de ejemplo")
	}
	return nil
}
