package usecase

import "context"

// AuthClient is the session-provider boundary (Firebase Auth in
// production).
type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(email, password string) (string, error)
}
