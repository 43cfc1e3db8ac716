// Package session guarda los identificadores (jti) de sesiones cerradas hasta que el
// token vence. Después del vencimiento el propio token deja de ser válido.
package session

import (
	"context"
	"sync"
	"time"
)

// MemoryRevoker registro en memoria del proceso. Sirve para una sola instancia.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevoker construye el registro vacío.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marca la sesión como cerrada hasta until.
func (m *MemoryRevoker) Revoke(_ context.Context, sessionID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge()
	if until.After(m.now()) {
		m.revoked[sessionID] = until
	}
	return nil
}

// IsRevoked indica si la sesión fue cerrada y aún no venció.
func (m *MemoryRevoker) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if !until.After(m.now()) {
		delete(m.revoked, sessionID)
		return false, nil
	}
	return true, nil
}

// purge elimina entradas vencidas; se llama con el lock tomado.
func (m *MemoryRevoker) purge() {
	now := m.now()
	for id, until := range m.revoked {
		if !until.After(now) {
			delete(m.revoked, id)
		}
	}
}
