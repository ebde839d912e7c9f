package cartControllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DillanMilo/angus-biltong-sub000/cart"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// originChecker accepts requests without an Origin header, from the API's own
// host, or from one of the listed origins. A "*" entry does not widen it: the
// socket rides on the cart cookie, so foreign pages are never let in.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set[strings.ToLower(origin)]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// CartWebSocketHandler streams the session's cart state: once on connect, then
// after every mutation. Only the newest pending state is kept for a slow client.
// The store stays registered for as long as the socket is open so later
// mutations reach it.
func CartWebSocketHandler(sessions *cart.Sessions, allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)}

	return func(c *gin.Context) {
		if !upgrader.CheckOrigin(c.Request) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
			return
		}

		store := open(c, sessions)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		updates := make(chan cart.State, 1)
		cancel := store.Subscribe(func(st cart.State) {
			for {
				select {
				case updates <- st:
					return
				default:
				}
				select {
				case <-updates:
				default:
				}
			}
		})
		defer cancel()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if err := write(conn, store.State()); err != nil {
			return
		}
		for {
			select {
			case <-closed:
				return
			case st := <-updates:
				if err := write(conn, st); err != nil {
					return
				}
			}
		}
	}
}

func write(conn *websocket.Conn, st cart.State) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(st)
}
