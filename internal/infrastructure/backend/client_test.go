package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/pkg/errors"
)

type jar struct {
	cookies []*http.Cookie
}

func (j *jar) UpstreamCookies() []*http.Cookie { return j.cookies }

func (j *jar) StoreUpstreamCookies(cookies []*http.Cookie) {
	j.cookies = append(j.cookies, cookies...)
}

func TestClient_DoDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c1", body["receiverId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"m1","content":"Bonjour"}`))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(srv.URL+"/", srv.Client())

	var out struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	err := client.Post(context.Background(), "/api/messages", map[string]string{"receiverId": "c1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "m1", out.ID)
	assert.Equal(t, "Bonjour", out.Content)
}

func TestClient_DoMapsUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Identifiants invalides"}`))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(srv.URL, srv.Client())
	err := client.Get(context.Background(), "/api/users/me", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUpstream))
	assert.Equal(t, http.StatusUnauthorized, errors.StatusOf(err))
	assert.Equal(t, "Identifiants invalides", errors.MessageOr(err, "fallback"))
}

func TestClient_DoWithoutMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(srv.URL, srv.Client())
	err := client.Delete(context.Background(), "/api/products/p1")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(err))
	assert.Equal(t, "fallback", errors.MessageOr(err, "fallback"))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, 0)
	err := client.Get(context.Background(), "/api/orders", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUpstream))
	assert.Equal(t, http.StatusBadGateway, errors.StatusOf(err))
}

func TestClient_ReplaysAndStoresCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("connect.sid")
		require.NoError(t, err)
		assert.Equal(t, "abc", c.Value)
		http.SetCookie(w, &http.Cookie{Name: "refresh", Value: "xyz"})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	creds := &jar{cookies: []*http.Cookie{{Name: "connect.sid", Value: "abc"}}}
	ctx := WithCredentials(context.Background(), creds)

	client := NewClientWithHTTP(srv.URL, srv.Client())
	require.NoError(t, client.Post(ctx, "/api/users/logout", nil, nil))

	require.Len(t, creds.cookies, 2)
	assert.Equal(t, "refresh", creds.cookies[1].Name)
	assert.Equal(t, "xyz", creds.cookies[1].Value)
}

func TestClient_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()

		data, _ := io.ReadAll(f)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, "PNGDATA", string(data))

		w.Write([]byte(`{"photoUrl":"https://cdn.example/avatar.png"}`))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(srv.URL, srv.Client())

	var out struct {
		PhotoURL string `json:"photoUrl"`
	}
	err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/user/profile/photo",
		File: &File{
			Field:       "photo",
			Filename:    "avatar.png",
			ContentType: "image/png",
			Content:     strings.NewReader("PNGDATA"),
		},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/avatar.png", out.PhotoURL)
}
