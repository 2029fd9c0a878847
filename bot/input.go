package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedTick 输入行不是 JSON 对象
var ErrMalformedTick = errors.New("malformed tick")

// MapConfig 首条消息 config 中的地图尺寸；缺省或非整数值时为 0
type MapConfig struct {
	Width  int
	Height int
}

// Tick 一条入站消息中用到的字段，其余字段直接丢弃
// 示例：{"config":{"width":20,"height":20},"tick":0,"bot":[1,1]}
type Tick struct {
	Config    MapConfig
	HasConfig bool // config 存在且是对象
	Seq       int  // tick 字段，仅用于调试日志
}

// ParseTick 宽松解析：只要求整行是 JSON 对象，字段类型不符时取默认值
func ParseTick(line []byte) (Tick, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return Tick{}, fmt.Errorf("%w: %v", ErrMalformedTick, err)
	}
	// "null" 能解码成功但得到 nil map
	if raw == nil {
		return Tick{}, fmt.Errorf("%w: not a JSON object", ErrMalformedTick)
	}

	var t Tick
	if c, ok := raw["config"]; ok {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(c, &fields); err == nil && fields != nil {
			t.HasConfig = true
			t.Config.Width = intField(fields, "width")
			t.Config.Height = intField(fields, "height")
		}
	}
	t.Seq = intField(raw, "tick")
	return t, nil
}

func intField(fields map[string]json.RawMessage, key string) int {
	v, ok := fields[key]
	if !ok {
		return 0
	}
	var n int
	if err := json.Unmarshal(v, &n); err == nil {
		return n
	}
	// JSON 不区分整数与整数值的浮点数：10.0、1e1 都按 10 处理
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
