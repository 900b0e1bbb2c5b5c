package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

type actorApi struct {
	svc *actor.Service
}

func registerActorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *actor.Service) {
	api := actorApi{svc: svc}

	ag := g.Group("/actors")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	authed := ag.Group("", jwt)
	authed.GET("/me", api.me)
	authed.GET("", api.query)
	authed.POST("/register", api.register, adminMiddleware())
}

func (api *actorApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(ctx, data.Username, data.Secret, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *actorApi) me(ctx echo.Context) error {
	act, err := contextActor(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, act)
}

// query lists the directory; every authed actor may read it (it backs the
// messaging UI's recipient picker).
func (api *actorApi) query(ctx echo.Context) error {
	actors, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying actors")
	}
	return ctx.JSON(http.StatusOK, actors)
}

func (api *actorApi) register(ctx echo.Context) error {
	var data actor.NewActor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewActor")
	}
	act, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, act)
}
