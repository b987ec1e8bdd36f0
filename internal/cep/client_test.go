package cep_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holistay/internal/cep"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *cep.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return cep.NewClient(srv.URL, 2*time.Second, nil, time.Hour, zap.NewNop())
}

func TestDigits(t *testing.T) {
	require.Equal(t, "01310930", cep.Digits("01310-930"))
	require.Equal(t, "01310930", cep.Digits(" 01310 930 "))
	require.Equal(t, "", cep.Digits("abc"))
}

func TestLookup_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/01310930/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01310-930","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	addr, err := c.Lookup(context.Background(), "01310-930")
	require.NoError(t, err)
	require.Equal(t, "Avenida Paulista", addr.Street)
	require.Equal(t, "Bela Vista", addr.Neighborhood)
	require.Equal(t, "São Paulo", addr.City)
	require.Equal(t, "SP", addr.State)
}

func TestLookup_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	})

	_, err := c.Lookup(context.Background(), "99999999")
	require.ErrorIs(t, err, cep.ErrNotFound)
}

func TestLookup_InvalidCEP(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid cep")
	})

	_, err := c.Lookup(context.Background(), "1234")
	require.ErrorIs(t, err, cep.ErrInvalidCEP)

	_, err = c.Lookup(context.Background(), "123456789")
	require.ErrorIs(t, err, cep.ErrInvalidCEP)
}

func TestLookup_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Lookup(context.Background(), "01310930")
	require.Error(t, err)
	require.NotErrorIs(t, err, cep.ErrNotFound)
}

func TestLookup_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立刻关掉，模拟传输失败
	c := cep.NewClient(srv.URL, time.Second, nil, time.Hour, zap.NewNop())

	_, err := c.Lookup(context.Background(), "01310930")
	require.Error(t, err)
}
