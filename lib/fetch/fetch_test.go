package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Render(ctx context.Context, url string) (string, error) {
	r.calls++
	return "<html><body>rendered</body></html>", nil
}

func TestFetchCompletePage(t *testing.T) {
	body := "<html><body>" + strings.Repeat("project listing ", 300) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	renderer := &stubRenderer{}
	client := NewClient(ClientOptions{Renderer: renderer})

	got, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, body, got)
	require.Zero(t, renderer.calls)
}

func TestFetchShortBodyFallsBackToRenderer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer server.Close()

	renderer := &stubRenderer{}
	client := NewClient(ClientOptions{Renderer: renderer})

	got, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Contains(t, got, "rendered")
	require.Equal(t, 1, renderer.calls)
}

func TestFetchShortBodyWithoutRenderer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer server.Close()

	client := NewClient(ClientOptions{})

	got, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, "<html><body></body></html>", got)
}

func TestFetchBadStatusWithoutRenderer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{})

	_, err := client.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}
