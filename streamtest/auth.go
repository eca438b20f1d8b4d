package streamtest

import (
	"context"
	"fmt"

	tide "github.com/iov-one/tide"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You
// can use either Signer or Signers (or both) attributes to reference
// conditions, each time all signers regardless of the attribute are
// considered.
type Auth struct {
	// Signer is a convenience attribute for authenticating a single
	// signer.
	Signer tide.Condition

	// Signers authenticates multiple signers.
	Signers []tide.Condition
}

func (a *Auth) GetConditions(tide.Context) []tide.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx tide.Context, addr tide.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface that stores
// and retrieves permissions from the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx tide.Context, permissions ...tide.Condition) tide.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx tide.Context) []tide.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]tide.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []tide.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx tide.Context, addr tide.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
