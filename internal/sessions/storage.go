package sessions

import "context"

// Backend is a namespaced key-value store shared by all sessions.
type Backend interface {
	Set(ctx context.Context, namespace, key, value string) error
	Get(ctx context.Context, namespace, key string) (string, error)
	Delete(ctx context.Context, namespace, key string) error
}

// Storage is the durable storage of one session.
type Storage struct {
	backend   Backend
	namespace string
}

// NewStorage scopes backend to namespace.
func NewStorage(backend Backend, namespace string) *Storage {
	return &Storage{backend: backend, namespace: namespace}
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.namespace, key, value)
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	return s.backend.Get(ctx, s.namespace, key)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.namespace, key)
}
