package common

import "context"

// Principal is the caller as resolved by the authentication middleware.
type Principal struct {
	// set for calls carrying the fixed api token
	APIToken bool
	Subject  string
	Name     string
	Roles    []string
	// the identity token carries the configured admin role
	Admin bool
}

func (p *Principal) Authenticated() bool {
	return p.APIToken || p.Subject != ""
}

// Elevated callers may submit payments, read attempt history and manage the catalog.
func (p *Principal) Elevated() bool {
	return p.APIToken || p.Admin
}

type ctxKeyPrincipal struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal{}, p)
}

// PrincipalFrom never returns nil. Without a principal in ctx the caller is anonymous.
func PrincipalFrom(ctx context.Context) *Principal {
	if p, ok := ctx.Value(ctxKeyPrincipal{}).(*Principal); ok && p != nil {
		return p
	}
	return &Principal{}
}
