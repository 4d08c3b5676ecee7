package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
)

// InitSocketServer wires the socket.io server to the hub. The handshake
// carries userId as a query parameter; a connection without one stays
// anonymous (sees presence broadcasts, never receives pushes).
func InitSocketServer(hub *Hub) *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})
	hub.Bind(server)

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		s.Join(presenceRoom)

		url := s.URL()
		userID := url.Query().Get("userId")
		if userID == "" {
			logger.Debug().Str("socket_id", s.ID()).Msg("anonymous socket connected")
			return nil
		}

		s.Join(userID)
		hub.HandleConnect(userID, s.ID())
		return nil
	})

	server.OnEvent("/", "getOnlineUsers", func(s socketio.Conn, msg string) {
		s.Emit(EventOnlineUsers, hub.Registry().OnlineUserIDs())
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		hub.HandleDisconnect(s.ID())
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("socket error")
	})

	go func() {
		if err := server.Serve(); err != nil {
			logger.Error().Err(err).Msg("socket server stopped")
		}
	}()
	return server
}

// Handler wraps the socket.io server for gin.
func Handler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
