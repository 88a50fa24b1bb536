package api_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sitecheck/internal/api"
	"sitecheck/internal/api/handler/v1handler"
	mockscanner "sitecheck/internal/scanner/mock"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func publicKeyPEM(t *testing.T) string {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func newTestServer(t *testing.T) (*httptest.Server, *mockscanner.MockScanner) {
	t.Helper()

	sc := mockscanner.NewMockScanner(gomock.NewController(t))
	reg := prometheus.NewRegistry()
	handler, err := api.NewHandler(api.Deps{
		Deps:       v1handler.Deps{Scanner: sc},
		Registerer: reg,
		Gatherer:   reg,
	}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: publicKeyPEM(t)},
		MetricsPath:       "/metrics",
		AllowedOrigin:     "https://app.example",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv, sc
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()

	res, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestNewHandler_Routes(t *testing.T) {
	srv, sc := newTestServer(t)
	sc.EXPECT().SharedScan(gomock.Any(), "abc").Return(nil, serrors.KindOnly(serrors.ErrNotFound))

	res, body := get(t, srv, "/v1/share/abc")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, body, `"code":"NOT_FOUND"`)
	require.Equal(t, "https://app.example", res.Header.Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))

	res, body = get(t, srv, "/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi: 3.0.3")

	res, _ = get(t, srv, "/v1/docs/")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = get(t, srv, "/debug/pprof/")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `http_requests_total{code="404",method="GET",route="/v1/share/{shareId}"} 1`)
}

func TestNewHandler_AuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)

	res, body := get(t, srv, "/v1/history")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Contains(t, body, `"code":"UNAUTHORIZED"`)
}

func TestNewHandler_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodOptions, srv.URL+"/v1/scan", nil)
	require.NoError(t, err)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
}

func TestNewHandler_InvalidPublicKey(t *testing.T) {
	_, err := api.NewHandler(api.Deps{Registerer: prometheus.NewRegistry()}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: ""},
	})
	require.Error(t, err)
}
