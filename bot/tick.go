package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// maxLineSize 单行消息上限（runner 每帧会附带可见格子列表）
const maxLineSize = 1 << 20

// Run 核心循环：读一行 → 选走法 → 写一行并立即刷新，直到 in 结束
// 读行是唯一的阻塞点；ctx 只在两行之间检查
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	w := bufio.NewWriter(out)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		mv, ok, err := s.Handle(sc.Bytes())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		if err := writeMove(w, mv); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func writeMove(w *bufio.Writer, mv Move) error {
	if _, err := w.WriteString(string(mv) + "\n"); err != nil {
		return fmt.Errorf("write move: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush move: %w", err)
	}
	return nil
}
