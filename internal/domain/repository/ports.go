// Package repository define los puertos del dominio: clientes remotos del backend
// REST y snapshots locales persistidos. Las implementaciones viven en
// internal/infrastructure (rest y localdb).
package repository

import (
	"context"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// ProductAPI cliente remoto de /productos.
type ProductAPI interface {
	FetchAll(ctx context.Context) ([]*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) (*entity.Product, error)
}

// TerceroAPI cliente remoto de /clientes (CRUD completo).
type TerceroAPI interface {
	FetchAll(ctx context.Context, search string) ([]*entity.Tercero, error)
	GetByID(ctx context.Context, id string) (*entity.Tercero, error)
	Create(ctx context.Context, t *entity.Tercero) (*entity.Tercero, error)
	Update(ctx context.Context, id string, t *entity.Tercero) (*entity.Tercero, error)
	Delete(ctx context.Context, id string) error
}

// TransactionAPI cliente remoto de /ventas o /compras (una instancia por endpoint).
type TransactionAPI interface {
	FetchAll(ctx context.Context) ([]*entity.Transaction, error)
	Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error)
}

// ReportAPI cliente remoto de /reportes.
type ReportAPI interface {
	FetchSummary(ctx context.Context, desde, hasta string) (*entity.Summary, error)
}

// AuthAPI cliente remoto de /usuarios (login).
type AuthAPI interface {
	Login(ctx context.Context, correo, password string) (*entity.Session, error)
}

// ProductSnapshot snapshot local del catálogo (lista completa, lectura/escritura wholesale).
type ProductSnapshot interface {
	Load() ([]*entity.Product, bool, error)
	Save([]*entity.Product) error
}

// TerceroSnapshot snapshot local de terceros.
type TerceroSnapshot interface {
	Load() ([]*entity.Tercero, bool, error)
	Save([]*entity.Tercero) error
}

// TransactionSnapshot snapshot local de ventas o compras (una instancia por tipo).
type TransactionSnapshot interface {
	Load() ([]*entity.Transaction, bool, error)
	Save([]*entity.Transaction) error
}

// SessionStore persistencia del token de sesión y del perfil de usuario bajo llaves fijas.
type SessionStore interface {
	Get() (*entity.Session, error)
	Put(s *entity.Session) error
	Clear() error
}
