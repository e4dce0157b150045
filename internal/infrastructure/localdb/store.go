// Package localdb implementa el snapshot local persistido sobre bbolt: una lista
// JSON serializada por tipo de entidad, leída y escrita completa en cada mutación
// (last writer wins, sin updates parciales), más las llaves fijas de la sesión.
// Cumple el mismo rol que localStorage en el front original.
package localdb

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Llaves dentro del bucket principal. Mismos nombres que usaba el front.
const (
	keyProductos = "minierp_productos"
	keyTerceros  = "minierp_terceros"
	keyVentas    = "minierp_ventas"
	keyCompras   = "minierp_compras"
	keyToken     = "minierp_token"
	keyUsuario   = "minierp_usuario"
)

var bucketName = []byte("minierp")

// Store archivo bbolt compartido por todos los snapshots y la sesión.
type Store struct {
	db *bolt.DB
}

// Open abre (o crea) el archivo del snapshot local.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir cache local: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}

// get devuelve el valor de una llave (nil si no existe).
func (s *Store) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return out, nil
}

// put escribe el valor completo de una llave.
func (s *Store) put(key string, val []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), val)
	})
	if err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

// delete elimina una llave.
func (s *Store) delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("eliminar %s: %w", key, err)
	}
	return nil
}
