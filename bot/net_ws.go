package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 45 * time.Second
	writeWait        = 5 * time.Second
)

// RunWS 通过 WebSocket 对局：每个文本帧是一条消息，回复一个只含方向的文本帧
// 对端正常关闭视为输入结束
func (s *Session) RunWS(ctx context.Context, url string) error {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()
	return s.serveConn(ctx, conn)
}

func (s *Session) serveConn(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxLineSize)
	// ctx 取消时关闭连接，解除 ReadMessage 的阻塞
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("read message: %w", err)
		}
		if messageType != websocket.TextMessage {
			continue
		}

		mv, ok, err := s.Handle(payload)
		if err != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "malformed tick"),
				time.Now().Add(writeWait))
			return err
		}
		if !ok {
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(mv)); err != nil {
			return fmt.Errorf("write move: %w", err)
		}
	}
}
