package auth

import "context"

// TokenStore tracks which issued tokens are still live. A token whose id is
// not in the store is rejected even when its signature and expiry are valid.
type TokenStore interface {
	Save(ctx context.Context, token *IssuedToken) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}
