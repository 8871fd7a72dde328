package middleware

import (
	"crypto/rsa"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-http-utils/headers"
	"github.com/golang-jwt/jwt/v4"

	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
)

const APIKeyHeader = "X-Api-Key"

var (
	errNoCredentials    = errors.New("neither api token nor identity token supplied")
	errAPITokenMismatch = errors.New("api token does not match the configured value")
	errMalformedBearer  = errors.New("authorization header must have the form 'Bearer <token>'")
	errInvalidToken     = errors.New("identity token is not signed by a configured key or has expired")
	errNoSubject        = errors.New("identity token carries no subject")
)

var validSigningMethods = []string{"RS256", "RS512"}

// Authenticator resolves the caller of a request into a common.Principal.
type Authenticator struct {
	apiToken   []byte
	cookieName string
	adminRole  string
	keys       []*rsa.PublicKey
}

func NewAuthenticator(conf *config.SecurityConfig) (*Authenticator, error) {
	if conf == nil {
		return nil, errors.New("no security configuration provided")
	}

	keys := make([]*rsa.PublicKey, 0, len(conf.Oidc.TokenPublicKeysPEM))
	for i, pem := range conf.Oidc.TokenPublicKeysPEM {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("security.oidc.token_public_keys_PEM[%d]: %w", i, err)
		}
		keys = append(keys, key)
	}

	return &Authenticator{
		apiToken:   []byte(conf.Fixed.Api),
		cookieName: conf.Oidc.TokenCookieName,
		adminRole:  conf.Oidc.AdminRole,
		keys:       keys,
	}, nil
}

// Identify checks the api token first. Without one, the identity token is taken from the
// Authorization header, then from the configured cookie.
func (a *Authenticator) Identify(r *http.Request) (*common.Principal, error) {
	if token := r.Header.Get(APIKeyHeader); token != "" {
		if len(a.apiToken) == 0 || subtle.ConstantTimeCompare([]byte(token), a.apiToken) != 1 {
			return nil, errAPITokenMismatch
		}
		return &common.Principal{APIToken: true}, nil
	}

	tokenString, err := a.bearerToken(r)
	if err != nil {
		return nil, err
	}

	return a.principalFromToken(tokenString)
}

func (a *Authenticator) bearerToken(r *http.Request) (string, error) {
	if value := r.Header.Get(headers.Authorization); value != "" {
		scheme, token, found := strings.Cut(value, " ")
		if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
			return "", errMalformedBearer
		}
		return token, nil
	}

	if a.cookieName != "" {
		if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", errNoCredentials
}

func (a *Authenticator) principalFromToken(tokenString string) (*common.Principal, error) {
	for _, key := range a.keys {
		claims := common.AllClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods(validSigningMethods))
		if err != nil || !token.Valid {
			continue
		}

		if claims.Subject == "" {
			return nil, errNoSubject
		}

		return &common.Principal{
			Subject: claims.Subject,
			Name:    claims.Global.Name,
			Roles:   claims.Global.Roles,
			Admin:   a.hasAdminRole(claims.Global.Roles),
		}, nil
	}

	return nil, errInvalidToken
}

func (a *Authenticator) hasAdminRole(roles []string) bool {
	if a.adminRole == "" {
		return false
	}
	for _, role := range roles {
		if role == a.adminRole {
			return true
		}
	}
	return false
}

// Authenticate rejects requests without a valid api token or identity token and stores the
// resolved principal in the request context.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.LoggerFromContext(ctx)

		principal, err := a.Identify(r)
		if err != nil {
			common.SendUnauthorizedResponse(w, logging.GetRequestID(ctx), logger, err.Error())
			return
		}

		if principal.APIToken {
			logger.Debug("authenticated by api token")
		} else {
			logger.Debug("authenticated subject %s (admin: %t)", principal.Subject, principal.Admin)
		}

		next.ServeHTTP(w, r.WithContext(common.WithPrincipal(ctx, principal)))
	})
}

// Elevated guards the payment and catalog maintenance routes. It expects Authenticate to
// have run before.
func Elevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		principal := common.PrincipalFrom(ctx)

		switch {
		case principal.Elevated():
			next.ServeHTTP(w, r)
		case !principal.Authenticated():
			common.SendUnauthorizedResponse(w, logging.GetRequestID(ctx), logging.LoggerFromContext(ctx), errNoCredentials.Error())
		default:
			common.SendForbiddenResponse(w, logging.GetRequestID(ctx), logging.LoggerFromContext(ctx),
				fmt.Sprintf("subject %s lacks the admin role", principal.Subject))
		}
	})
}
