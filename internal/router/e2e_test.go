//go:build integration

package router

// End-to-end tests against real Postgres and Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"abbafoods/internal/config"
	"abbafoods/internal/infra"
	"abbafoods/internal/metrics"
	"abbafoods/internal/repository"
	"abbafoods/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

type e2eEnv struct {
	engine  *gin.Engine
	metrics *metrics.Registry
	pdfDir  string
}

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("abbafoods_test"),
		tcPostgres.WithUsername("abba"),
		tcPostgres.WithPassword("abba"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:             "test",
		DatabaseURL:     pgURL,
		RedisURL:        rdURL,
		WorkerPoolSize:  1,
		RecetasCacheTTL: time.Minute,
		PDFStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	repos := repository.NewSet(db)
	mreg := metrics.NewRegistry()

	poolCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	pool := worker.NewPool(rdb, cfg.WorkerPoolSize, mreg)
	pool.Register(worker.QueuePDF, worker.JobPDFPedido, worker.NewPdfWorker(repos.Pedidos, repos.Recetas, cfg.PDFStoragePath))
	pool.Start(poolCtx)

	engine := New(cfg, Deps{
		DB:         db,
		Redis:      rdb,
		Repos:      repos,
		Metrics:    mreg,
		Dispatcher: worker.NewDispatcher(rdb),
	})
	return &e2eEnv{engine: engine, metrics: mreg, pdfDir: cfg.PDFStoragePath}
}

func TestE2E_CicloCompleto(t *testing.T) {
	env := setupE2E(t)
	r := env.engine

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"db":"connected"`)

	// 1. Inventory
	w = doJSON(t, r, http.MethodPost, "/v1/materias-primas", map[string]any{
		"nombre": "Leche Cruda", "cantidad": 100, "unidad": "L", "tipo": "leche", "stock_minimo": 20,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/v1/materias-primas", map[string]any{
		"nombre": "Cultivo Láctico", "cantidad": 3, "unidad": "Sobres", "tipo": "insumo", "stock_minimo": 5,
		"fecha_vencimiento": "2030-02-20",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cultivo := decode[idResp](t, w).ID

	w = doJSON(t, r, http.MethodPost, "/v1/materias-primas/"+cultivo+"/presentaciones", map[string]any{
		"descripcion": "Caja x 50 sobres", "tamano_paquete": 50, "unidad": "Sobres", "costo": 125,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	presentacion := decode[idResp](t, w).ID

	w = doJSON(t, r, http.MethodGet, "/v1/materias-primas/alertas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	// 2. Recipe, list twice to fill and hit the cache
	w = doJSON(t, r, http.MethodPost, "/v1/recetas", map[string]any{
		"nombre": "Yogur Natural",
		"ingredientes": []map[string]any{{
			"material_id": cultivo, "material_nombre": "Cultivo Láctico", "cantidad_por_litro": 0.05,
			"unidad": "Sobres", "presentacion_id": presentacion,
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	receta := decode[idResp](t, w).ID

	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodGet, "/v1/recetas", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"costo_por_litro":"0.125"`)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RecetasCache.WithLabelValues("hit")))

	w = doJSON(t, r, http.MethodPost, "/v1/recetas", map[string]any{
		"nombre": "YOGUR NATURAL",
		"ingredientes": []map[string]any{{"material_nombre": "Miel", "cantidad_por_litro": 1, "unidad": "gr"}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 3. Production: 80 L needs 4 sobres, only 3 in stock
	w = doJSON(t, r, http.MethodPost, "/v1/produccion/ordenes", map[string]any{"receta_id": receta, "volumen_leche": 80})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/produccion/ordenes", map[string]any{"receta_id": receta, "volumen_leche": 60})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `"lote":"OP-\d{12}"`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/v1/materias-primas/"+cultivo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cantidad":"3"`, "launching never decrements stock")

	// 4. Order, background PDF, production from order
	w = doJSON(t, r, http.MethodPost, "/v1/pedidos", map[string]any{
		"cliente_nombre": "Cafetería Central", "receta_id": receta, "cantidad": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ped := decode[struct {
		ID           string `json:"id"`
		NumeroPedido string `json:"numero_pedido"`
	}](t, w)

	pdfPath := filepath.Join(env.pdfDir, "pedido_"+ped.NumeroPedido+".pdf")
	require.Eventually(t, func() bool {
		_, err := os.Stat(pdfPath)
		return err == nil
	}, 10*time.Second, 100*time.Millisecond)

	guardada, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/v1/pedidos/"+ped.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, guardada, w.Body.Bytes(), "print serves the background render")

	w = doJSON(t, r, http.MethodPost, "/v1/pedidos/"+ped.ID+"/orden-produccion", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/v1/recetas/"+receta, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/v1/pedidos/"+ped.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 5. Sales flags and dashboard
	w = doJSON(t, r, http.MethodPatch, "/v1/ventas/"+ped.ID+"/estado-entrega", map[string]any{"estado": "entregado"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"etiqueta":"DESPACHADO POR CANCELAR"`)

	w = doJSON(t, r, http.MethodGet, "/v1/ventas?filtro=realizadas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = doJSON(t, r, http.MethodGet, "/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[struct {
		LecheEnStock     string `json:"leche_en_stock"`
		OrdenesEnProceso int    `json:"ordenes_en_proceso"`
		PedidosHoy       int    `json:"pedidos_hoy"`
	}](t, w)
	assert.Equal(t, "100", d.LecheEnStock)
	assert.Equal(t, 2, d.OrdenesEnProceso)
	assert.Equal(t, 1, d.PedidosHoy)
}
