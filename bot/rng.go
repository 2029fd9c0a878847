package bot

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"
)

// Rand 会话持有的随机源，每条消息调用一次 Intn
type Rand interface {
	Intn(n int) int
}

const (
	RNGPCG32 = "pcg32"
	RNGMath  = "math"
)

// NewRand 按名称构造随机源；同一 seed 下序列可复现
func NewRand(name string, seed uint64) (Rand, error) {
	switch name {
	case RNGPCG32, "":
		return NewPCG32(seed), nil
	case RNGMath:
		return rand.New(rand.NewSource(int64(seed))), nil
	default:
		return nil, fmt.Errorf("unknown rng %q", name)
	}
}

const (
	pcgMultiplier = 6364136223846793005
	pcgStream     = 54
)

// PCG32 XSH RR 变体（64 位状态，固定 stream 54），与 runner 及其他语言的基线 bot 逐位一致
type PCG32 struct {
	state uint64
	inc   uint64
}

func NewPCG32(seed uint64) *PCG32 {
	p := &PCG32{}
	p.Seed(seed)
	return p
}

// Seed 重置状态，seed 即 initstate
func (p *PCG32) Seed(seed uint64) {
	p.state = 0
	p.inc = pcgStream<<1 | 1
	p.Uint32()
	p.state += seed
	p.Uint32()
}

func (p *PCG32) Uint32() uint32 {
	old := p.state
	p.state = old*pcgMultiplier + p.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Intn 返回 [0,n) 内的均匀整数；拒绝采样的阈值为 2^32 mod n
func (p *PCG32) Intn(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		panic("bot: invalid argument to PCG32.Intn")
	}
	bound := uint32(n)
	threshold := -bound % bound
	for {
		r := p.Uint32()
		if r >= threshold {
			return int(r % bound)
		}
	}
}
