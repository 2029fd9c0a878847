package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

func newWSServer(t *testing.T, handle func(conn *websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade error: %v", err)
			return
		}
		defer conn.Close()
		handle(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRunWS(t *testing.T) {
	replies := make(chan []string, 1)
	url := newWSServer(t, func(conn *websocket.Conn) {
		// 非文本帧不回复
		if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}); err != nil {
			t.Errorf("write binary: %v", err)
			return
		}
		var got []string
		for _, msg := range []string{`{"config":{"width":20,"height":20}}`, `{}`, `{}`} {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				t.Errorf("write tick: %v", err)
				return
			}
			_, reply, err := conn.ReadMessage()
			if err != nil {
				t.Errorf("read move: %v", err)
				return
			}
			got = append(got, string(reply))
		}
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		replies <- got
	})

	sess, logs := newTestSession(t, FailOnMalformed)
	if err := sess.RunWS(context.Background(), url); err != nil {
		t.Fatalf("RunWS: %v", err)
	}

	if diff := cmp.Diff([]string{"S", "N", "W"}, <-replies); diff != "" {
		t.Errorf("unexpected moves (-want +got)\n%s", diff)
	}
	if n := logs.FilterMessage("Random walker launching on a 20x20 map").Len(); n != 1 {
		t.Errorf("banner logged %d times, want 1", n)
	}
}

func TestRunWSMalformed(t *testing.T) {
	closeCode := make(chan int, 1)
	url := newWSServer(t, func(conn *websocket.Conn) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
			t.Errorf("write tick: %v", err)
			return
		}
		_, _, err := conn.ReadMessage()
		var ce *websocket.CloseError
		if errors.As(err, &ce) {
			closeCode <- ce.Code
			return
		}
		closeCode <- -1
	})

	sess, _ := newTestSession(t, FailOnMalformed)
	if err := sess.RunWS(context.Background(), url); !errors.Is(err, ErrMalformedTick) {
		t.Fatalf("RunWS error = %v, want ErrMalformedTick", err)
	}
	if code := <-closeCode; code != websocket.CloseUnsupportedData {
		t.Errorf("close code = %d, want %d", code, websocket.CloseUnsupportedData)
	}
}

func TestRunWSCanceled(t *testing.T) {
	url := newWSServer(t, func(conn *websocket.Conn) {
		// 一直等到客户端断开
		_, _, _ = conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sess, _ := newTestSession(t, FailOnMalformed)
	if err := sess.RunWS(ctx, url); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunWS error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRunWSDialError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	sess, _ := newTestSession(t, FailOnMalformed)
	if err := sess.RunWS(context.Background(), url); err == nil {
		t.Fatal("expected a dial error")
	}
}
