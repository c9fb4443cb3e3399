package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"promptbox/internal/models"
)

// OpenKeyring opens the OS keyring under serviceName.
func OpenKeyring(serviceName string) (keyring.Keyring, error) {
	if serviceName == "" {
		return nil, errors.New("keyring service name is required")
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              serviceName,
		KeychainTrustApplication: true,
		LibSecretCollectionName:  serviceName,
		KWalletAppID:             serviceName,
		KWalletFolder:            serviceName,
		WinCredPrefix:            serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring %s: %w", serviceName, err)
	}
	return ring, nil
}

// keyringSettingRepository stores secret settings in the keyring and
// delegates every other key to the wrapped repository.
type keyringSettingRepository struct {
	inner  SettingRepository
	ring   keyring.Keyring
	secret map[string]bool
}

// NewKeyringSettingRepository routes the API key to ring.
func NewKeyringSettingRepository(inner SettingRepository, ring keyring.Keyring) SettingRepository {
	return &keyringSettingRepository{
		inner:  inner,
		ring:   ring,
		secret: map[string]bool{models.KeyAPIKey: true},
	}
}

func (r *keyringSettingRepository) List(ctx context.Context) ([]models.Setting, error) {
	stored, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Setting, 0, len(stored)+len(r.secret))
	for _, s := range stored {
		if !r.secret[s.Key] {
			out = append(out, s)
		}
	}
	for key := range r.secret {
		s, err := r.getSecret(key)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *keyringSettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	if r.secret[key] {
		return r.getSecret(key)
	}
	return r.inner.Get(ctx, key)
}

func (r *keyringSettingRepository) Put(ctx context.Context, setting *models.Setting) error {
	if setting != nil && r.secret[setting.Key] {
		return r.putSecret(*setting)
	}
	return r.inner.Put(ctx, setting)
}

// BulkPut writes the database keys in one transaction first; keyring writes
// follow and are not covered by that transaction.
func (r *keyringSettingRepository) BulkPut(ctx context.Context, settings []models.Setting) error {
	var plain, secrets []models.Setting
	for _, s := range settings {
		if r.secret[s.Key] {
			secrets = append(secrets, s)
		} else {
			plain = append(plain, s)
		}
	}
	if err := r.inner.BulkPut(ctx, plain); err != nil {
		return err
	}
	for _, s := range secrets {
		if err := r.putSecret(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *keyringSettingRepository) Clear(ctx context.Context) error {
	if err := r.inner.Clear(ctx); err != nil {
		return err
	}
	for key := range r.secret {
		if err := r.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("removing %s from keyring: %w", key, err)
		}
	}
	return nil
}

func (r *keyringSettingRepository) getSecret(key string) (*models.Setting, error) {
	item, err := r.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s from keyring: %w", key, err)
	}
	return &models.Setting{Key: key, Value: string(item.Data)}, nil
}

func (r *keyringSettingRepository) putSecret(s models.Setting) error {
	err := r.ring.Set(keyring.Item{
		Key:         s.Key,
		Data:        []byte(s.Value),
		Label:       "PromptBox " + s.Key,
		Description: "Gemini API key used by PromptBox",
	})
	if err != nil {
		return fmt.Errorf("writing %s to keyring: %w", s.Key, err)
	}
	return nil
}
