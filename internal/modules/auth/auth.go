package auth

import "context"

// Service defines authentication-related business logic. Login issues a
// signed session token; Logout invalidates it before its natural expiry.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*Session, error)
}
