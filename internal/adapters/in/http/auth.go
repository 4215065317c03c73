package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"distribution/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	RoleAdmin       = "admin"
	RoleDistributor = "distributor"
	RoleCourier     = "courier"

	principalKey = "principal"
)

// ErrForbidden is returned when the caller's role may not run an operation.
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated caller. StaffID is set for couriers only.
type Principal struct {
	Subject string
	Role    string
	StaffID *kernel.UUID
}

type claims struct {
	Role    string `json:"role"`
	StaffID string `json:"staffId,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken validates an HS256 token and extracts the principal. A courier
// token must carry the courier's staffId.
func ParseToken(token, secret string) (Principal, error) {
	if secret == "" {
		return Principal{}, errors.New("jwt secret is empty")
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, err
	}
	if !parsed.Valid {
		return Principal{}, errors.New("invalid token")
	}

	p := Principal{Subject: c.Subject, Role: strings.ToLower(c.Role)}
	switch p.Role {
	case RoleAdmin, RoleDistributor:
	case RoleCourier:
		staffID, err := kernel.UUIDFromString(c.StaffID)
		if err != nil {
			return Principal{}, fmt.Errorf("courier token without a valid staffId: %w", err)
		}
		p.StaffID = &staffID
	default:
		return Principal{}, fmt.Errorf("unknown role %q", c.Role)
	}
	return p, nil
}

// Authenticate stores the caller's Principal in the request context. With an
// empty secret authentication is off and every caller acts as admin.
func Authenticate(secret string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}
			if secret == "" {
				c.Set(principalKey, Principal{Role: RoleAdmin})
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			p, err := ParseToken(strings.TrimSpace(token), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// requireRole fails with ErrForbidden unless the caller has one of roles.
func requireRole(c echo.Context, roles ...string) error {
	p, ok := principalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s", ErrForbidden, p.Role)
}

// actingCourier returns the courier whose assignment may be driven, or nil
// when a distributor or admin acts on any assignment.
func actingCourier(c echo.Context) (*kernel.UUID, error) {
	if err := requireRole(c, RoleCourier, RoleDistributor, RoleAdmin); err != nil {
		return nil, err
	}
	p, _ := principalFrom(c)
	if p.Role == RoleCourier {
		return p.StaffID, nil
	}
	return nil, nil
}
