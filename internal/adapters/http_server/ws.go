package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// toastStream pushes the full toast list on connect and after changes.
func (h *Handlers) toastStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// One pending wake-up is enough: the loop always sends the current list,
	// so a burst of changes collapses into a single up-to-date frame.
	changed := make(chan struct{}, 1)
	unsubscribe := h.Notify.Toasts().Subscribe(func([]domain.Toast) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go readPump(conn, closed)

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	if err := writeToasts(conn, h.Notify.List()); err != nil {
		return
	}
	for {
		select {
		case <-changed:
			if err := writeToasts(conn, h.Notify.List()); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func writeToasts(conn *websocket.Conn, ts []domain.Toast) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if ts == nil {
		ts = []domain.Toast{}
	}
	return conn.WriteJSON(ts)
}

// readPump drains client frames so pongs and close frames are processed.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("toast stream closed")
			}
			return
		}
	}
}
