package localdb

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "minierp.db"))
	require.NoError(t, err, "abrir el store de prueba no debe fallar")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────
// Siembra inicial
// ──────────────────────────────────────────────

func TestEnsureSeed_SiembraLlavesVacias(t *testing.T) {
	s := newTestStore(t)
	log := testLogger()

	require.NoError(t, s.EnsureSeed(log))

	productos, ok, err := NewProductSnapshot(s, log).Load()
	require.NoError(t, err)
	assert.True(t, ok, "la llave de productos debe existir tras la siembra")
	assert.NotEmpty(t, productos, "la siembra debe incluir productos de ejemplo")
}

func TestEnsureSeed_NoPisaDatosExistentes(t *testing.T) {
	s := newTestStore(t)
	log := testLogger()
	repo := NewProductSnapshot(s, log)

	propios := []*entity.Product{{ID: "p1", SKU: "ABC-1", Name: "Propio", Price: decimal.NewFromInt(10), Stock: 3}}
	require.NoError(t, repo.Save(propios))

	require.NoError(t, s.EnsureSeed(log))

	cargados, ok, err := repo.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cargados, 1, "la siembra no debe reemplazar datos ya guardados")
	assert.Equal(t, "p1", cargados[0].ID)
}

// ──────────────────────────────────────────────
// Blobs corruptos
// ──────────────────────────────────────────────

func TestLoad_BlobCorruptoSeResiembra(t *testing.T) {
	s := newTestStore(t)
	log := testLogger()

	require.NoError(t, s.put(keyProductos, []byte("{esto no es json")))

	productos, ok, err := NewProductSnapshot(s, log).Load()
	require.NoError(t, err, "un blob corrupto no debe propagar error")
	assert.True(t, ok)
	assert.NotEmpty(t, productos, "el blob corrupto debe reemplazarse por los datos de ejemplo")
}

// ──────────────────────────────────────────────
// Ida y vuelta de snapshots
// ──────────────────────────────────────────────

func TestSnapshots_GuardarYCargar(t *testing.T) {
	s := newTestStore(t)
	log := testLogger()

	ventas := NewVentaSnapshot(s, log)
	compras := NewCompraSnapshot(s, log)

	venta := &entity.Transaction{ID: "v1", Total: decimal.NewFromFloat(99.50)}
	require.NoError(t, ventas.Save([]*entity.Transaction{venta}))

	cargadas, ok, err := ventas.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cargadas, 1)
	assert.Equal(t, "v1", cargadas[0].ID)
	assert.True(t, cargadas[0].Total.Equal(decimal.NewFromFloat(99.50)))

	// Las ventas y las compras viven bajo llaves separadas
	_, ok, err = compras.Load()
	require.NoError(t, err)
	assert.False(t, ok, "guardar ventas no debe crear la llave de compras")
}

// ──────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────

func TestSessionStore_CicloCompleto(t *testing.T) {
	s := newTestStore(t)
	store := NewSessionStore(s)

	sess, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, sess, "sin token guardado no hay sesión")

	require.NoError(t, store.Put(&entity.Session{Token: "abc123", Usuario: []byte(`{"nombre":"Ana"}`)}))

	sess, err = store.Get()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "abc123", sess.Token)
	assert.JSONEq(t, `{"nombre":"Ana"}`, string(sess.Usuario))

	require.NoError(t, store.Clear())
	sess, err = store.Get()
	require.NoError(t, err)
	assert.Nil(t, sess, "tras Clear no debe quedar sesión")
}
