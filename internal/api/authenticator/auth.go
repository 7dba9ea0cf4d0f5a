package authenticator

import (
	"errors"
	"time"

	"github.com/curaious/taskhive/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when the Authorization header is absent or
	// does not carry a bearer token.
	ErrMissingToken = errors.New("missing or malformed bearer token")

	// ErrInvalidToken is returned for any token that fails signature
	// verification or cannot be parsed.
	ErrInvalidToken = errors.New("invalid token")
)

// Authenticator issues and verifies the signed identity tokens used by the API.
// Tokens are self-contained: verification never requires a database round-trip.
type Authenticator struct {
	secret []byte
	ttl    time.Duration

	// Signature-only parser. Expiry is deliberately not enforced here; it is
	// checked by ValidateToken, which only the login confirmation path calls.
	parser *jwt.Parser
}

func New(conf *config.Config) *Authenticator {
	return &Authenticator{
		secret: []byte(conf.JWT_SECRET),
		ttl:    time.Duration(conf.JWT_TTL_HOURS) * time.Hour,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// GenerateToken signs a token with the user's email as subject plus name and
// role claims. Issued-at is now, expiry is now plus the configured TTL.
func (a *Authenticator) GenerateToken(name, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"name": name,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(a.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) parse(tokenStr string) (jwt.MapClaims, error) {
	token, err := a.parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractSubject verifies the token signature and returns the subject (the
// user's email). It does not check expiry.
func (a *Authenticator) ExtractSubject(tokenStr string) (string, error) {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return "", err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return "", ErrInvalidToken
	}

	return sub, nil
}

// ExtractClaim returns the named string claim, or "" when the claim is absent.
func (a *Authenticator) ExtractClaim(tokenStr, name string) (string, error) {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return "", err
	}

	val, _ := claims[name].(string)
	return val, nil
}

// ValidateToken reports whether the token's subject equals expectedSubject and
// the token has not expired. Expiry is compared against the wall clock with no
// skew tolerance.
func (a *Authenticator) ValidateToken(tokenStr, expectedSubject string) bool {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return false
	}

	sub, _ := claims["sub"].(string)
	if sub != expectedSubject {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(time.Now())
}
