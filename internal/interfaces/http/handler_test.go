package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/application/reports"
	"github.com/jhoicas/minierp-gateway/internal/application/session"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
	"github.com/jhoicas/minierp-gateway/internal/application/trading"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/infrastructure/pdf"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// Fakes mínimos: el backend no tiene ninguna ruta, todo opera sobre snapshots.

type fakeProductAPI struct{ list []*entity.Product }

func (f *fakeProductAPI) FetchAll(ctx context.Context) ([]*entity.Product, error) {
	return f.list, nil
}
func (f *fakeProductAPI) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	return nil, domain.ErrRouteNotImplemented
}

type fakeProductSnap struct{ list []*entity.Product }

func (f *fakeProductSnap) Load() ([]*entity.Product, bool, error) { return f.list, f.list != nil, nil }
func (f *fakeProductSnap) Save(list []*entity.Product) error      { f.list = list; return nil }

type fakeTerceroAPI struct{}

func (f *fakeTerceroAPI) FetchAll(ctx context.Context, search string) ([]*entity.Tercero, error) {
	return nil, domain.ErrRouteNotImplemented
}
func (f *fakeTerceroAPI) GetByID(ctx context.Context, id string) (*entity.Tercero, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeTerceroAPI) Create(ctx context.Context, t *entity.Tercero) (*entity.Tercero, error) {
	return nil, domain.ErrRouteNotImplemented
}
func (f *fakeTerceroAPI) Update(ctx context.Context, id string, t *entity.Tercero) (*entity.Tercero, error) {
	return nil, domain.ErrRouteNotImplemented
}
func (f *fakeTerceroAPI) Delete(ctx context.Context, id string) error {
	return domain.ErrRouteNotImplemented
}

type fakeTerceroSnap struct{ list []*entity.Tercero }

func (f *fakeTerceroSnap) Load() ([]*entity.Tercero, bool, error) { return f.list, f.list != nil, nil }
func (f *fakeTerceroSnap) Save(list []*entity.Tercero) error      { f.list = list; return nil }

type fakeTxAPI struct{}

func (f *fakeTxAPI) FetchAll(ctx context.Context) ([]*entity.Transaction, error) {
	return nil, domain.ErrRouteNotImplemented
}
func (f *fakeTxAPI) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	return nil, domain.ErrRouteNotImplemented
}

type fakeTxSnap struct{ list []*entity.Transaction }

func (f *fakeTxSnap) Load() ([]*entity.Transaction, bool, error) { return f.list, f.list != nil, nil }
func (f *fakeTxSnap) Save(list []*entity.Transaction) error      { f.list = list; return nil }

type fakeReportAPI struct{}

func (f *fakeReportAPI) FetchSummary(ctx context.Context, desde, hasta string) (*entity.Summary, error) {
	return nil, domain.ErrRouteNotImplemented
}

type fakeAuthAPI struct{}

func (f *fakeAuthAPI) Login(ctx context.Context, correo, password string) (*entity.Session, error) {
	if password != "secreto" {
		return nil, domain.NewAPIError(401, "credenciales inválidas")
	}
	return &entity.Session{Token: "tok-abc"}, nil
}

type fakeSessionStore struct{ sess *entity.Session }

func (f *fakeSessionStore) Get() (*entity.Session, error) { return f.sess, nil }
func (f *fakeSessionStore) Put(s *entity.Session) error   { f.sess = s; return nil }
func (f *fakeSessionStore) Clear() error                  { f.sess = nil; return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	catalogo := []*entity.Product{
		{ID: "p1", SKU: "ABC-1", Name: "Producto uno", Price: decimal.NewFromFloat(10.00), Stock: 5},
	}
	productos := store.NewProductStore(&fakeProductAPI{list: catalogo}, &fakeProductSnap{}, EventBus.New(), log)
	terceros := store.NewTerceroStore(&fakeTerceroAPI{}, &fakeTerceroSnap{}, log)
	ventas := store.NewTransactionStore(entity.KindSale, &fakeTxAPI{}, &fakeTxSnap{}, log)
	compras := store.NewTransactionStore(entity.KindPurchase, &fakeTxAPI{}, &fakeTxSnap{}, log)
	composer := trading.NewComposer(productos, ventas, compras, log)
	agg := reports.NewAggregator(&fakeReportAPI{}, productos, ventas, compras, log)
	manager := session.NewManager(&fakeAuthAPI{}, &fakeSessionStore{}, log)

	app := fiber.New()
	Router(app, RouterDeps{
		Productos: productos,
		Terceros:  terceros,
		Ventas:    ventas,
		Compras:   compras,
		Composer:  composer,
		Reports:   agg,
		ReportPDF: pdf.NewReportPDFGenerator(),
		Session:   manager,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e.Code
}

// ──────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────

func TestProductos_ListaYAlta(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/productos/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var lista []entity.Product
	require.NoError(t, json.Unmarshal(raw, &lista))
	require.Len(t, lista, 1)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/productos/",
		`{"sku":"nuevo-1","nombre":"Nuevo","precio":19.999,"stock":2}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/productos/",
		`{"sku":"ABC-1","nombre":"Repetido","precio":1}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, raw))
}

func TestProductos_AjusteDeStock(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/productos/p1/stock", `{"delta":-6}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SIN_STOCK", errorCode(t, raw))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/productos/p1/stock", `{"delta":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/productos/p1/stock", `{"delta":-2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var p entity.Product
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, 3, p.Stock)
}

// ──────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────

func TestVentas_AltaFeliz(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/ventas/",
		`{"cliente":{"id":"t1","nombre":"Comercial Andina S.A.C."},"items":[{"productoId":"p1","cantidad":2}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var tx entity.Transaction
	require.NoError(t, json.Unmarshal(raw, &tx))
	assert.True(t, tx.Total.Equal(decimal.NewFromInt(20)))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/ventas/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var lista []entity.Transaction
	require.NoError(t, json.Unmarshal(raw, &lista))
	assert.Len(t, lista, 1)
}

func TestVentas_SinItemsEs400(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/ventas/",
		`{"cliente":{"id":"t1","nombre":"Cliente"},"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

// ──────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────

func TestReportes_RangoInvalidoEs400(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/reportes/resumen?desde=ayer&hasta=2026-08-31", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestReportes_CSVDescargable(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/reportes/resumen.csv?desde=2026-08-01&hasta=2026-08-31", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(string(raw), "\uFEFF"))
}

// ──────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────

func TestAuth_LoginYLogout(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/auth/login",
		`{"correo":"ana@minierp.pe","password":"mala"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "BACKEND", errorCode(t, raw))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/auth/login",
		`{"correo":"ana@minierp.pe","password":"secreto"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "tok-abc", out.Token)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/session", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, raw))
}
