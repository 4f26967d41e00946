package secrets

import "context"

// StorageAdapter exposes a Store bound to ServiceName in the get/set/delete
// shape the identity SDK expects from a device key storage provider.
type StorageAdapter struct {
	Store Store
}

// NewStorageAdapter binds s to the CLI's service namespace.
func NewStorageAdapter(s Store) *StorageAdapter {
	return &StorageAdapter{Store: s}
}

func (a *StorageAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	return a.Store.Get(ctx, ServiceName, key)
}

func (a *StorageAdapter) Set(ctx context.Context, key, value string) error {
	return a.Store.Set(ctx, ServiceName, key, value)
}

func (a *StorageAdapter) Delete(ctx context.Context, key string) error {
	return a.Store.Delete(ctx, ServiceName, key)
}
