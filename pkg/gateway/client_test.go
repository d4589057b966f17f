package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) GenerateServiceToken(subject string) (string, error) {
	return string(s), nil
}

type payload struct {
	Name string `json:"name"`
}

var errThingNotFound = errors.New("thing not found")

func TestDoSendsJSONAndDecodesResponse(t *testing.T) {
	var gotAuth, gotMethod, gotPath, gotQuery string
	var gotBody payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"stored"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/v1/", time.Second, staticToken("tok"))
	var out payload
	err := client.Do(context.Background(), Request{
		Op:     "things.create",
		Method: http.MethodPost,
		Path:   "/things",
		Query:  url.Values{"q": {"pasta"}},
		Body:   payload{Name: "Pasta"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/things", gotPath)
	assert.Equal(t, "pasta", gotQuery)
	assert.Equal(t, payload{Name: "Pasta"}, gotBody)
	assert.Equal(t, payload{Name: "stored"}, out)
}

func TestDoSurfacesSanitizedServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"<b>database</b> is down"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).Do(context.Background(), Request{
		Op: "things.update", Method: http.MethodPut, Path: "/things/1",
	}, nil)

	ge, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, ge.StatusCode)
	assert.Equal(t, "database is down", ge.Error())
}

func TestDoMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such thing"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).Do(context.Background(), Request{
		Op: "things.read", Method: http.MethodGet, Path: "/things/x", NotFound: errThingNotFound,
	}, nil)

	assert.ErrorIs(t, err, errThingNotFound)
	assert.Equal(t, "no such thing", err.Error())
}

func TestDoFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).Do(context.Background(), Request{
		Op: "things.read", Method: http.MethodGet, Path: "/things/x",
	}, nil)

	assert.Equal(t, "Internal Server Error", err.Error())
}

func TestDoAbandonsOnContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL, 5*time.Second, nil).Do(ctx, Request{
		Op: "things.read", Method: http.MethodGet, Path: "/things/x",
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoReportsUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	err := NewClient(target, time.Second, nil).Do(context.Background(), Request{
		Op: "things.read", Method: http.MethodGet, Path: "/things/x",
	}, nil)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "the recipe service could not be reached", err.Error())
}
