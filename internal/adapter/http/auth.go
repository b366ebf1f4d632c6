package http

import (
	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/domain/actor"
)

// Actor identity rides on headers set by the upstream gateway, which owns
// authentication. This layer only reads them.
const (
	HeaderActorID      = "X-Actor-Id"
	HeaderActorRole    = "X-Actor-Role"
	HeaderActorPartner = "X-Actor-Partner"
)

const actorContextKey = "loanflow.actor"

// ActorMiddleware parses the identity headers into an actor and stashes it
// on the request context. Missing or garbage headers yield the zero actor;
// role gates in the usecases reject it.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			act := actor.Actor{
				ID:        c.Request().Header.Get(HeaderActorID),
				Role:      actor.Role(c.Request().Header.Get(HeaderActorRole)),
				PartnerID: c.Request().Header.Get(HeaderActorPartner),
			}
			c.Set(actorContextKey, act)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) actor.Actor {
	if act, ok := c.Get(actorContextKey).(actor.Actor); ok {
		return act
	}
	return actor.Actor{}
}
