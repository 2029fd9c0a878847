package bot

import (
	"sync/atomic"
)

// SessionMetrics 记录会话期间的计数（退出时写入调试日志）
type SessionMetrics struct {
	TicksHandled int64 // 成功处理并回复的消息数
	TicksSkipped int64 // skip 模式下丢弃的非法行
	North        int64
	South        int64
	East         int64
	West         int64
}

func (m *SessionMetrics) IncSkipped() { atomic.AddInt64(&m.TicksSkipped, 1) }

func (m *SessionMetrics) AddMove(mv Move) {
	atomic.AddInt64(&m.TicksHandled, 1)
	switch mv {
	case MoveNorth:
		atomic.AddInt64(&m.North, 1)
	case MoveSouth:
		atomic.AddInt64(&m.South, 1)
	case MoveEast:
		atomic.AddInt64(&m.East, 1)
	case MoveWest:
		atomic.AddInt64(&m.West, 1)
	}
}

// Snapshot 返回只读副本
func (m *SessionMetrics) Snapshot() map[string]any {
	return map[string]any{
		"ticks_handled": atomic.LoadInt64(&m.TicksHandled),
		"ticks_skipped": atomic.LoadInt64(&m.TicksSkipped),
		"moves_n":       atomic.LoadInt64(&m.North),
		"moves_s":       atomic.LoadInt64(&m.South),
		"moves_e":       atomic.LoadInt64(&m.East),
		"moves_w":       atomic.LoadInt64(&m.West),
	}
}

// Fields 以 key/value 交替的形式展开 Snapshot，供 SugaredLogger 的 *w 方法使用
func (m *SessionMetrics) Fields() []any {
	snap := m.Snapshot()
	out := make([]any, 0, len(snap)*2)
	for _, k := range []string{"ticks_handled", "ticks_skipped", "moves_n", "moves_s", "moves_e", "moves_w"} {
		out = append(out, k, snap[k])
	}
	return out
}
