package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// AuthorizationHeader is the header the JWT verifier reads credentials from.
const AuthorizationHeader = "authorization"

// bearerScheme is the expected Authorization scheme.
const bearerScheme = "bearer"

// JWTConfig configures the JWT verifier. Exactly one of Secret or JWKSURL
// must be set.
type JWTConfig struct {
	// Secret is a shared HMAC secret.
	Secret string

	// Algorithm is the expected signing algorithm for Secret, HS256 by
	// default.
	Algorithm string

	// JWKSURL is the URL of a JSON Web Key Set to verify against. The key
	// set is fetched once at construction, matching the cold-start model.
	JWKSURL string

	// Issuer, when set, must equal the token's iss claim.
	Issuer string

	// Audience, when set, must be present in the token's aud claim.
	Audience string
}

// JWTVerifier validates bearer tokens from the Authorization header. It is
// built once at cold start and is safe for concurrent use.
type JWTVerifier struct {
	alg      jwa.SignatureAlgorithm
	secret   []byte
	keySet   jwk.Set
	issuer   string
	audience string
}

// NewJWTVerifier creates a JWT verifier from the given configuration.
func NewJWTVerifier(ctx context.Context, cfg JWTConfig) (*JWTVerifier, error) {
	if cfg.Secret == "" && cfg.JWKSURL == "" {
		return nil, fmt.Errorf("jwt verifier: %w", ErrKeyNotFound)
	}
	if cfg.Secret != "" && cfg.JWKSURL != "" {
		return nil, errors.New("jwt verifier: secret and JWKS URL are mutually exclusive")
	}

	v := &JWTVerifier{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}

	if cfg.Secret != "" {
		alg := jwa.HS256
		if cfg.Algorithm != "" {
			alg = jwa.SignatureAlgorithm(cfg.Algorithm)
		}
		v.alg = alg
		v.secret = []byte(cfg.Secret)
		return v, nil
	}

	set, err := jwk.Fetch(ctx, cfg.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("jwt verifier: failed to fetch JWKS from %s: %w", cfg.JWKSURL, err)
	}
	v.keySet = set
	return v, nil
}

// Verify implements Verifier. A missing or malformed Authorization header,
// an invalid signature, or an expired token are verification errors (the
// middleware answers 401). A structurally valid token always authorizes;
// finer-grained denial belongs to a wrapping verifier.
func (v *JWTVerifier) Verify(ctx context.Context, in *Input) (*Result, error) {
	raw, err := extractBearer(in.Headers)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParseOption{
		jwt.WithContext(ctx),
		jwt.WithValidate(true),
	}
	if v.keySet != nil {
		opts = append(opts, jwt.WithKeySet(v.keySet))
	} else {
		opts = append(opts, jwt.WithKey(v.alg, v.secret))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.Parse([]byte(raw), opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	result := &Result{
		IsAuthorized: true,
		UserID:       token.Subject(),
		Claims:       token.PrivateClaims(),
	}
	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			result.Email = s
		}
	}
	return result, nil
}

// extractBearer pulls the bearer token out of the Authorization header.
// Header keys arrive lower-cased from the request model.
func extractBearer(headers map[string]string) (string, error) {
	value := headers[AuthorizationHeader]
	if value == "" {
		value = headers["Authorization"]
	}
	if value == "" {
		return "", ErrNoCredentials
	}

	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", fmt.Errorf("%w: authorization header is not a bearer token", ErrInvalidToken)
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrNoCredentials
	}
	return token, nil
}

// Ensure JWTVerifier implements Verifier.
var _ Verifier = (*JWTVerifier)(nil)
