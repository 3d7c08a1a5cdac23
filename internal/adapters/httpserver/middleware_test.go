package httpserver

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipDescartaContentLengthDeclarado(t *testing.T) {
	body := strings.Repeat("body plano sin comprimir ", 100)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// como hace http.FileServer: declara el largo del cuerpo plano
		w.Header().Set("Content-Length", "4096")
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/public/styles.css", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	Gzip(inner).ServeHTTP(rec, req)

	// el largo declarado correspondía al cuerpo sin comprimir, no puede
	// quedar en la respuesta comprimida
	assert.Empty(t, rec.Header().Get("Content-Length"))
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))
}

func TestGzipSinAcceptEncodingPasaDerecho(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plano"))
	})

	rec := httptest.NewRecorder()
	Gzip(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "plano", rec.Body.String())
}

func TestRateLimiterCortaPorVentana(t *testing.T) {
	l := newRateLimiter(2)
	now := time.Now()

	assert.True(t, l.allow("1.1.1.1", now))
	assert.True(t, l.allow("1.1.1.1", now))
	assert.False(t, l.allow("1.1.1.1", now), "el tercer pedido en la ventana se corta")

	// ventana nueva resetea el contador
	assert.True(t, l.allow("1.1.1.1", now.Add(2*time.Minute)))
}

func TestRateLimiterBarreVentanasVencidas(t *testing.T) {
	l := newRateLimiter(10)
	now := time.Now()

	for _, ip := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		l.allow(ip, now)
	}
	require.Len(t, l.buckets, 3)

	// al abrir una ventana nueva las vencidas desaparecen del mapa
	l.allow("4.4.4.4", now.Add(2*time.Minute))
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["4.4.4.4"]
	assert.True(t, ok)
}
