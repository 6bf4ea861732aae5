package echoapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	broadcastsvc "github.com/AhmadXRAUF940/attendance--tracker/services/broadcast"
)

var upgrader = websocket.Upgrader{
	// clients connect from the SPA's origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

func wsHandler(hub *broadcastsvc.Hub) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
		if err != nil {
			return errors.Wrap(err, "upgrading websocket connection")
		}
		hub.HandleConn(conn)
		return nil
	}
}
