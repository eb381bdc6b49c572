package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mektycoon/mekgold/backend/handlers"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

// fakeGold implements only what a test sets; anything else panics through the
// nil embedded interface.
type fakeGold struct {
	handlers.GoldService

	ensure   func(id string) (*models.Account, bool, error)
	collect  func(id string) (*gold.CollectResult, error)
	grant    func(req gold.GrantRequest) (*gold.GrantResult, error)
	revoke   func(id int64) (*gold.RevokeResult, error)
	update   func(id string, u gold.AccountUpdate) (*models.Account, error)
	spend    func(id string, amount float64) (*gold.SpendResult, error)
	sweep    func() (*gold.SweepResult, error)
	snapshot func(id string) (*gold.AccountSnapshot, error)
	getType  func(id string) (models.ModifierType, error)
}

func (f *fakeGold) EnsureAccount(_ context.Context, id string) (*models.Account, bool, error) {
	return f.ensure(id)
}

func (f *fakeGold) Collect(_ context.Context, id string) (*gold.CollectResult, error) {
	return f.collect(id)
}

func (f *fakeGold) GrantModifier(_ context.Context, req gold.GrantRequest) (*gold.GrantResult, error) {
	return f.grant(req)
}

func (f *fakeGold) RevokeModifier(_ context.Context, id int64) (*gold.RevokeResult, error) {
	return f.revoke(id)
}

func (f *fakeGold) ApplyAccountUpdate(_ context.Context, id string, u gold.AccountUpdate) (*models.Account, error) {
	return f.update(id, u)
}

func (f *fakeGold) Spend(_ context.Context, id string, amount float64) (*gold.SpendResult, error) {
	return f.spend(id, amount)
}

func (f *fakeGold) SweepExpiredModifiers(context.Context) (*gold.SweepResult, error) {
	return f.sweep()
}

func (f *fakeGold) Snapshot(_ context.Context, id string) (*gold.AccountSnapshot, error) {
	return f.snapshot(id)
}

func (f *fakeGold) GetModifierType(_ context.Context, id string) (models.ModifierType, error) {
	return f.getType(id)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string            `json:"code"`
		Message   string            `json:"message"`
		Retryable bool              `json:"retryable"`
		Details   map[string]string `json:"details"`
	} `json:"error"`
}

func newTestApp(svc *fakeGold) *handlers.WebApp {
	return &handlers.WebApp{Gold: svc, DB: fakePinger{}, AdminToken: "secret", Version: "test"}
}

func do(t *testing.T, webApp *handlers.WebApp, method, path, body string, header map[string]string) (int, envelope) {
	t.Helper()

	app := NewApp(webApp, nil)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestCollectEndpoint(t *testing.T) {
	svc := &fakeGold{
		collect: func(id string) (*gold.CollectResult, error) {
			assert.Equal(t, "mek-1", id)
			return &gold.CollectResult{AccountID: id, Collected: 720, WasCapped: true, CountedHours: 72}, nil
		},
	}

	status, env := do(t, newTestApp(svc), http.MethodPost, "/api/accounts/mek-1/collect", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Contains(t, env.Message, "forfeited")

	var res gold.CollectResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 720.0, res.Collected)
	assert.True(t, res.WasCapped)
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{
			name:   "account not found",
			err:    gold.ErrAccountNotFound,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:      "conflict after retries",
			err:       &gold.ConflictError{Operation: "collect", AccountID: "mek-1", Attempts: 3, Err: errors.New("version conflict")},
			status:    http.StatusConflict,
			code:      "CONFLICT",
			retryable: true,
		},
		{
			name:   "unexpected",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeGold{
				collect: func(string) (*gold.CollectResult, error) { return nil, tt.err },
			}

			status, env := do(t, newTestApp(svc), http.MethodPost, "/api/accounts/mek-1/collect", "", nil)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, env.Error)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Equal(t, tt.retryable, env.Error.Retryable)
		})
	}
}

func TestInvalidAccountIDRejected(t *testing.T) {
	status, env := do(t, newTestApp(&fakeGold{}), http.MethodPost, "/api/accounts/bad%20id!/collect", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestEnsureAccountStatus(t *testing.T) {
	created := true
	svc := &fakeGold{
		ensure: func(id string) (*models.Account, bool, error) {
			return &models.Account{ID: id, Role: "player", Level: 1}, created, nil
		},
	}
	webApp := newTestApp(svc)

	status, _ := do(t, webApp, http.MethodPut, "/api/accounts/mek-1", "", nil)
	assert.Equal(t, http.StatusCreated, status)

	created = false
	status, env := do(t, webApp, http.MethodPut, "/api/accounts/mek-1", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Account exists", env.Message)
}

func TestGrantModifierEndpoint(t *testing.T) {
	mod := &models.Modifier{ID: 7, TypeID: "gold_rush", Source: "event", Stacks: 3, Active: true}

	t.Run("max stacks is a success", func(t *testing.T) {
		svc := &fakeGold{
			grant: func(req gold.GrantRequest) (*gold.GrantResult, error) {
				assert.Equal(t, "gold_rush", req.TypeID)
				require.NotNil(t, req.Duration)
				assert.Equal(t, 90*time.Minute, *req.Duration)
				return &gold.GrantResult{Outcome: gold.GrantMaxStacks, Modifier: mod, MaxStacks: 3}, nil
			},
		}

		status, env := do(t, newTestApp(svc), http.MethodPost, "/api/accounts/mek-1/modifiers",
			`{"type":"gold_rush","source":"event","duration_ms":5400000}`, nil)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, env.Success)

		var body struct {
			Outcome  string `json:"outcome"`
			Modifier struct {
				ID     int64 `json:"id"`
				Stacks int   `json:"stacks"`
			} `json:"modifier"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.Equal(t, "max_stacks", body.Outcome)
		assert.Equal(t, int64(7), body.Modifier.ID)
		assert.Equal(t, 3, body.Modifier.Stacks)
	})

	t.Run("unknown type carries suggestions", func(t *testing.T) {
		svc := &fakeGold{
			grant: func(req gold.GrantRequest) (*gold.GrantResult, error) {
				return nil, &gold.ModifierTypeNotFoundError{TypeID: req.TypeID, Suggestions: []string{"gold_rush"}}
			},
		}

		status, env := do(t, newTestApp(svc), http.MethodPost, "/api/accounts/mek-1/modifiers", `{"type":"gold_rsh"}`, nil)
		assert.Equal(t, http.StatusNotFound, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "gold_rush", env.Error.Details["suggestions"])
	})

	t.Run("negative duration fails validation", func(t *testing.T) {
		status, env := do(t, newTestApp(&fakeGold{}), http.MethodPost, "/api/accounts/mek-1/modifiers",
			`{"type":"gold_rush","duration_ms":-1}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "duration_ms")
	})
}

func TestModifierTypeDetail(t *testing.T) {
	svc := &fakeGold{
		getType: func(id string) (models.ModifierType, error) {
			if id == "gold_rush" {
				return models.ModifierType{ID: id, Category: "gold_rate", Kind: "percentage", MaxStacks: 3}, nil
			}
			return models.ModifierType{}, &gold.ModifierTypeNotFoundError{TypeID: id}
		},
	}

	status, _ := do(t, newTestApp(svc), http.MethodGet, "/api/modifier-types/gold_rush", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env := do(t, newTestApp(svc), http.MethodGet, "/api/modifier-types/moon_beam", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Nil(t, env.Error.Details)
}

func TestRevokeModifierEndpoint(t *testing.T) {
	svc := &fakeGold{
		revoke: func(id int64) (*gold.RevokeResult, error) {
			assert.Equal(t, int64(42), id)
			return &gold.RevokeResult{Modifier: &models.Modifier{ID: id}, AlreadyInactive: true}, nil
		},
	}

	status, env := do(t, newTestApp(svc), http.MethodDelete, "/api/modifiers/42", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Modifier was already inactive", env.Message)

	status, _ = do(t, newTestApp(svc), http.MethodDelete, "/api/modifiers/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSpendInsufficientBalance(t *testing.T) {
	svc := &fakeGold{
		spend: func(string, float64) (*gold.SpendResult, error) {
			return nil, gold.ErrInsufficientBalance
		},
	}

	status, env := do(t, newTestApp(svc), http.MethodPost, "/api/accounts/mek-1/spend", `{"amount":50}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
}

func TestAdminRoutes(t *testing.T) {
	svc := &fakeGold{
		sweep: func() (*gold.SweepResult, error) {
			return &gold.SweepResult{Deactivated: 2, AccountsRecomputed: 1}, nil
		},
		update: func(id string, u gold.AccountUpdate) (*models.Account, error) {
			assert.Equal(t, gold.SetBalance{Amount: 100}, u)
			return &models.Account{ID: id, Balance: 100}, nil
		},
	}
	webApp := newTestApp(svc)
	auth := map[string]string{"Authorization": "Bearer secret"}

	t.Run("missing token", func(t *testing.T) {
		status, _ := do(t, webApp, http.MethodPost, "/admin/sweep", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("wrong token", func(t *testing.T) {
		status, _ := do(t, webApp, http.MethodPost, "/admin/sweep", "", map[string]string{"Authorization": "Bearer nope"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("sweep", func(t *testing.T) {
		status, env := do(t, webApp, http.MethodPost, "/admin/sweep", "", auth)
		require.Equal(t, http.StatusOK, status)

		var res gold.SweepResult
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, int64(2), res.Deactivated)
	})

	t.Run("account update", func(t *testing.T) {
		status, env := do(t, webApp, http.MethodPost, "/admin/accounts/mek-1/update", `{"type":"set_balance","amount":100}`, auth)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Account updated: set_balance", env.Message)
	})

	t.Run("unknown update type", func(t *testing.T) {
		status, _ := do(t, webApp, http.MethodPost, "/admin/accounts/mek-1/update", `{"type":"grant_everything"}`, auth)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("disabled without a token", func(t *testing.T) {
		disabled := newTestApp(svc)
		disabled.AdminToken = ""
		status, _ := do(t, disabled, http.MethodPost, "/admin/sweep", "", auth)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestHealthCheck(t *testing.T) {
	webApp := newTestApp(&fakeGold{})
	status, _ := do(t, webApp, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	webApp.DB = fakePinger{err: errors.New("connection refused")}
	status, env := do(t, webApp, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.True(t, env.Success)
}

func TestUnknownRoute(t *testing.T) {
	status, env := do(t, newTestApp(&fakeGold{}), http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
