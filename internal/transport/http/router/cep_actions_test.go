package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holistay/internal/cep"
)

func newCEPAPI(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	client := cep.NewClient(srv.URL, 2*time.Second, nil, time.Hour, zap.NewNop())

	r := gin.New()
	mountCEPActions(r.Group("/api/v1"), client, zap.NewNop())
	return r
}

func TestCEPAPI_Found(t *testing.T) {
	r := newCEPAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cep/01310-930", nil))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 0, env.Code)

	var addr map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &addr))
	require.Equal(t, "Avenida Paulista", addr["logradouro"])
	require.Equal(t, "SP", addr["uf"])
}

func TestCEPAPI_NotFound(t *testing.T) {
	r := newCEPAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"erro": true}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cep/99999999", nil))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 404, env.Code)
	require.Equal(t, "CEP não encontrado.", env.Msg)
}

func TestCEPAPI_TooShort(t *testing.T) {
	r := newCEPAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("upstream must not be called")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cep/123", nil))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, 400, env.Code)
}
