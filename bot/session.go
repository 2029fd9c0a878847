package bot

import (
	"go.uber.org/zap"
)

// Session 一局对战的全部可变状态：首帧标记与随机源，只在单个循环里推进
type Session struct {
	rng       Rand
	log       *zap.SugaredLogger
	policy    MalformedPolicy
	firstTick bool

	metrics SessionMetrics
}

// NewSession 创建会话；rng 由调用方按 seed 构造，会话独占
func NewSession(rng Rand, log *zap.SugaredLogger, policy MalformedPolicy) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{
		rng:       rng,
		log:       log,
		policy:    policy,
		firstTick: true,
	}
}

// Handle 处理一条消息并选出走法；ok 为 false 表示该行被跳过，不应输出
func (s *Session) Handle(line []byte) (mv Move, ok bool, err error) {
	t, err := ParseTick(line)
	if err != nil {
		if s.policy == SkipMalformed {
			s.metrics.IncSkipped()
			s.log.Warnw("skipping malformed tick", "error", err)
			return "", false, nil
		}
		return "", false, err
	}

	if s.firstTick {
		s.log.Infof("Random walker launching on a %dx%d map", t.Config.Width, t.Config.Height)
		if !t.HasConfig {
			s.log.Debugw("first tick carried no config object", "tick", t.Seq)
		}
		s.firstTick = false
	}

	mv = RandomMove(s.rng)
	s.metrics.AddMove(mv)
	s.log.Debugw("move", "tick", t.Seq, "move", string(mv))
	return mv, true, nil
}

func (s *Session) Metrics() *SessionMetrics { return &s.metrics }
