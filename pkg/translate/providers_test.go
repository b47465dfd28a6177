package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleProvider_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "auto", q.Get("sl"))
		assert.Equal(t, "es", q.Get("tl"))
		assert.Equal(t, "I feel anxious", q.Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[["Me siento ","I feel ",null,null],["ansioso","anxious",null,null]],null,"en"]`))
	}))
	defer server.Close()

	p := NewGoogleProvider(GoogleConfig{BaseURL: server.URL})

	out, err := p.Translate(context.Background(), "I feel anxious", SourceAuto, "es")
	require.NoError(t, err)
	assert.Equal(t, "Me siento ansioso", out)
}

func TestGoogleProvider_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewGoogleProvider(GoogleConfig{BaseURL: server.URL})

	_, err := p.Translate(context.Background(), "hello", SourceAuto, "es")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestMyMemoryProvider_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "en|fr", r.URL.Query().Get("langpair"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseData":{"translatedText":"Bonjour"},"responseStatus":200}`))
	}))
	defer server.Close()

	p := NewMyMemoryProvider(MyMemoryConfig{BaseURL: server.URL})

	out, err := p.Translate(context.Background(), "Hello", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)
}

func TestMyMemoryProvider_AutoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Autodetect|en", r.URL.Query().Get("langpair"))
		w.Write([]byte(`{"responseData":{"translatedText":"Hello"},"responseStatus":200}`))
	}))
	defer server.Close()

	p := NewMyMemoryProvider(MyMemoryConfig{BaseURL: server.URL})

	out, err := p.Translate(context.Background(), "Bonjour", SourceAuto, "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestMyMemoryProvider_ErrorInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responseData":{"translatedText":""},"responseStatus":403,"responseDetails":"invalid language pair"}`))
	}))
	defer server.Close()

	p := NewMyMemoryProvider(MyMemoryConfig{BaseURL: server.URL})

	_, err := p.Translate(context.Background(), "hello", "en", "xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid language pair")
}
