package playvault

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcVaultDispatch handles the fire-and-forget action envelope. The engine
// result is logged, never returned: the protocol has no error channel toward
// the requester, so the handler acks receipt of any well-formed envelope.
func rpcVaultDispatch(s *Service) func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var envelope struct {
			Action  string          `json:"action"`
			Payload json.RawMessage `json:"payload,omitempty"`
		}
		if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
			logger.Error("Failed to unmarshal dispatch envelope: %v", err)
			return "", ErrPayloadDecode
		}

		actorID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || actorID == "" {
			logger.Error("No user ID in context")
			return "", ErrNoSessionUser
		}

		accepted := s.Dispatch(ctx, logger, nk, actorID, envelope.Action, envelope.Payload)
		logger.Debug("Dispatched %s for %s, accepted=%v", envelope.Action, actorID, accepted)
		return "{}", nil
	}
}

// rpcVaultGet returns a snapshot of the caller's live record for client
// rendering. Read-only.
func rpcVaultGet(s *Service) func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		actorID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || actorID == "" {
			logger.Error("No user ID in context")
			return "", ErrNoSessionUser
		}

		session, ok := s.sessions.Lookup(actorID)
		if !ok {
			logger.Debug("Vault get for %s without active session", actorID)
			return "", ErrNoActiveSession
		}

		responseData, err := json.Marshal(session.snapshot())
		if err != nil {
			logger.Error("Failed to marshal vault snapshot: %v", err)
			return "", ErrPayloadEncode
		}
		return string(responseData), nil
	}
}

// rpcVaultCatalog returns the static item table.
func rpcVaultCatalog(s *Service) func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		response := struct {
			Items map[string]*CatalogItem `json:"items"`
		}{
			Items: s.catalog.Items(),
		}
		responseData, err := json.Marshal(response)
		if err != nil {
			logger.Error("Failed to marshal catalog: %v", err)
			return "", ErrPayloadEncode
		}
		return string(responseData), nil
	}
}
