package playvault

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcHandler = func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// testInitializer is a test double for runtime.Initializer.
// Only implements the registration hooks the service uses.
type testInitializer struct {
	runtime.Initializer
	rpcs         map[string]rpcHandler
	sessionStart func(ctx context.Context, logger runtime.Logger, evt *api.Event)
	sessionEnd   func(ctx context.Context, logger runtime.Logger, evt *api.Event)
}

func newTestInitializer() *testInitializer {
	return &testInitializer{rpcs: make(map[string]rpcHandler)}
}

func (i *testInitializer) RegisterRpc(id string, fn rpcHandler) error {
	i.rpcs[id] = fn
	return nil
}

func (i *testInitializer) RegisterEventSessionStart(fn func(ctx context.Context, logger runtime.Logger, evt *api.Event)) error {
	i.sessionStart = fn
	return nil
}

func (i *testInitializer) RegisterEventSessionEnd(fn func(ctx context.Context, logger runtime.Logger, evt *api.Event)) error {
	i.sessionEnd = fn
	return nil
}

func actorContext(actorID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, actorID)
}

const testConfigJSON = `{
	"daily_reward": 100,
	"items": {
		"Sword": {"price": 0, "category": "tool", "equippable": true},
		"Pistol": {"price": 450, "category": "tool", "equippable": true}
	}
}`

func TestInitEndToEnd(t *testing.T) {
	nk := newTestNakama()
	nk.files = map[string]string{"playvault.json": testConfigJSON}
	initializer := newTestInitializer()
	logger := testLogger()

	s, err := Init(context.Background(), logger, nk, initializer, "playvault.json")
	require.NoError(t, err)
	defer s.Close()

	require.Contains(t, initializer.rpcs, "vault_dispatch")
	require.Contains(t, initializer.rpcs, "vault_get")
	require.Contains(t, initializer.rpcs, "vault_catalog")
	require.NotNil(t, initializer.sessionStart)
	require.NotNil(t, initializer.sessionEnd)

	ctx := actorContext("actor-1")
	initializer.sessionStart(ctx, logger, &api.Event{})

	_, err = initializer.rpcs["vault_dispatch"](ctx, logger, nil, nk, `{"action":"PlayerMoney","payload":500}`)
	require.NoError(t, err)
	_, err = initializer.rpcs["vault_dispatch"](ctx, logger, nil, nk, `{"action":"BuyItem","payload":"Pistol"}`)
	require.NoError(t, err)

	response, err := initializer.rpcs["vault_get"](ctx, logger, nil, nk, "")
	require.NoError(t, err)
	var vault Vault
	require.NoError(t, json.Unmarshal([]byte(response), &vault))
	assert.Equal(t, int64(50), vault.Balance)
	assert.Equal(t, []string{"Sword", "Pistol"}, vault.Inventory)

	initializer.sessionEnd(ctx, logger, &api.Event{})
	stored, ok := nk.storedValue(s.config.StorageCollection, "actor-1")
	require.True(t, ok, "session end flushed the record")
	assert.Contains(t, stored, `"Pistol"`)
}

func TestInitFailsOnMissingConfig(t *testing.T) {
	nk := newTestNakama()
	_, err := Init(context.Background(), testLogger(), nk, newTestInitializer(), "missing.json")
	assert.Error(t, err)
}

func TestInitFailsOnBadConfig(t *testing.T) {
	nk := newTestNakama()
	nk.files = map[string]string{"playvault.json": "{broken"}
	_, err := Init(context.Background(), testLogger(), nk, newTestInitializer(), "playvault.json")
	assert.Error(t, err)
}

func TestRpcVaultDispatchRejectsBadEnvelope(t *testing.T) {
	s, nk, _, _ := newTestService()
	handler := rpcVaultDispatch(s)

	_, err := handler(actorContext("actor-1"), testLogger(), nil, nk, "{broken")
	assert.ErrorIs(t, err, ErrPayloadDecode)

	_, err = handler(context.Background(), testLogger(), nil, nk, `{"action":"ClaimDaily"}`)
	assert.ErrorIs(t, err, ErrNoSessionUser)
}

func TestRpcVaultGetWithoutSession(t *testing.T) {
	s, nk, _, _ := newTestService()
	handler := rpcVaultGet(s)

	_, err := handler(actorContext("ghost"), testLogger(), nil, nk, "")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestRpcVaultCatalog(t *testing.T) {
	s, nk, _, _ := newTestService()
	handler := rpcVaultCatalog(s)

	response, err := handler(context.Background(), testLogger(), nil, nk, "")
	require.NoError(t, err)

	var decoded struct {
		Items map[string]*CatalogItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(response), &decoded))
	assert.Len(t, decoded.Items, s.catalog.Len())
	assert.Equal(t, int64(450), decoded.Items["Pistol"].Price)
}
