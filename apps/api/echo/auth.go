package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "actorToken",
		Claims:        new(Claims),
	}

	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "actor not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errHTTPForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHTTPNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// Claims represents the authorization claims transmitted via a JWT. They
// carry the whole actor so every operation re-derives the current actor from
// the request instead of caching ambient state.
type Claims struct {
	jwt.StandardClaims
	Name            string `json:"name,omitempty"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
	Role            string `json:"role,omitempty"`
	AssignedClass   string `json:"class,omitempty"`
	AssignedSubject string `json:"subject,omitempty"`
}

func GetActorClaims(act actor.Actor) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   act.ID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:            act.Name,
		Username:        act.Username,
		Email:           act.Email,
		Role:            string(act.Role),
		AssignedClass:   act.AssignedClass,
		AssignedSubject: act.AssignedSubject,
	}
}

func authenticate(ctx echo.Context, uname, secret string, svc *actor.Service) (*Claims, error) {
	act, err := svc.Authenticate(ctx.Request().Context(), uname, secret)
	if err != nil {
		if errors.Cause(err) == actor.ErrBadCredentials {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "authenticating")
	}
	return GetActorClaims(act), nil
}

// GenerateToken generates a signed JWT token string representing the actor Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextActor rebuilds the acting actor from the request's claims. This is
// the "current actor" input of every store operation.
func contextActor(ctx echo.Context) (actor.Actor, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.Actor{
		ID:              claims.Subject,
		Name:            claims.Name,
		Username:        claims.Username,
		Email:           claims.Email,
		Role:            actor.Role(claims.Role),
		AssignedClass:   claims.AssignedClass,
		AssignedSubject: claims.AssignedSubject,
	}, nil
}

// adminMiddleware only lets admins through.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			act, err := contextActor(ctx)
			if err != nil {
				return err
			}
			if !act.IsAdmin() {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}
