package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	learnkit "github.com/skillhub/learnkit"
	"github.com/skillhub/learnkit/pkg/apiclient"
)

func newClient(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-http schemes", func(t *testing.T) {
		t.Parallel()

		_, err := apiclient.New("ftp://example.com")
		assert.Error(t, err)
	})

	t.Run("rejects relative URLs", func(t *testing.T) {
		t.Parallel()

		_, err := apiclient.New("/api")
		assert.Error(t, err)
	})
}

func TestClient_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/login", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@b.com", body["email"])
			assert.Equal(t, "secret", body["password"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok2",
				"user":  map[string]any{"id": 1, "name": "Ana", "email": "a@b.com", "role": "STUDENT"},
			})
		}))

		result, err := client.Login(ctx, "a@b.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "tok2", result.Token)
		assert.Equal(t, "Ana", result.User.Name)
		assert.Equal(t, apiclient.RoleStudent, result.User.Role)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
		}))

		_, err := client.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, apiclient.ErrInvalidCredentials)
		assert.ErrorContains(t, err, "invalid credentials")
	})

	t.Run("server failure", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.Login(ctx, "a@b.com", "secret")
		assert.ErrorIs(t, err, apiclient.ErrServer)
	})

	t.Run("unreachable host", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // force a connection failure

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		_, err = client.Login(ctx, "a@b.com", "secret")
		assert.ErrorIs(t, err, apiclient.ErrTransport)
	})

	t.Run("missing token in response", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "name": "Ana", "role": "STUDENT"},
			})
		}))

		_, err := client.Login(ctx, "a@b.com", "secret")
		assert.ErrorIs(t, err, apiclient.ErrMalformedResponse)
	})
}

func TestClient_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	params := apiclient.RegisterParams{
		Name:                 "Ana",
		Email:                "a@b.com",
		Password:             "secret",
		PasswordConfirmation: "secret",
	}

	t.Run("success submits default role", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/register", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "STUDENT", body["role"])
			assert.Equal(t, "secret", body["password_confirmation"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok3",
				"user":  map[string]any{"id": 2, "name": "Ana", "email": "a@b.com", "role": "STUDENT"},
			})
		}))

		result, err := client.Register(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, "tok3", result.Token)
		assert.EqualValues(t, 2, result.User.ID)
	})

	t.Run("field validation failure", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errors": map[string][]string{
					"email":    {"already taken"},
					"password": {"too short", "needs a digit"},
				},
			})
		}))

		_, err := client.Register(ctx, params)
		require.Error(t, err)

		var verr learnkit.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"already taken"}, verr["email"])
		assert.Equal(t, []string{"too short", "needs a digit"}, verr["password"])
	})

	t.Run("empty 422 still rejects", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))

		_, err := client.Register(ctx, params)

		var verr learnkit.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.False(t, verr.IsEmpty())
	})
}

func TestClient_Me(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/me", r.URL.Path)
			assert.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 1, "name": "Ana", "email": "a@b.com", "role": "STUDENT"},
			})
		}))

		user, err := client.Me(ctx, "tok1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, user.ID)
		assert.Equal(t, "Ana", user.Name)
	})

	t.Run("rejected token", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.Me(ctx, "expired")
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
		assert.True(t, apiclient.IsAuthError(err))
	})

	t.Run("empty profile is malformed", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": nil})
		}))

		_, err := client.Me(ctx, "tok1")
		assert.ErrorIs(t, err, apiclient.ErrMalformedResponse)
	})
}

func TestClient_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/logout", r.URL.Path)
			assert.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		}))

		assert.NoError(t, client.Logout(ctx, "tok1"))
	})

	t.Run("remote failure is reported", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		assert.ErrorIs(t, client.Logout(ctx, "tok1"), apiclient.ErrServer)
	})
}

func TestRole(t *testing.T) {
	t.Parallel()

	assert.True(t, apiclient.RoleAdmin.Valid())
	assert.True(t, apiclient.RoleTeacher.Valid())
	assert.True(t, apiclient.RoleStudent.Valid())
	assert.False(t, apiclient.Role("MODERATOR").Valid())
	assert.False(t, apiclient.Role("").Valid())
}
