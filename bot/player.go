package bot

// Move 每条消息回复的方向指令
type Move string

const (
	MoveNorth Move = "N"
	MoveSouth Move = "S"
	MoveEast  Move = "E"
	MoveWest  Move = "W"
)

// Moves 顺序固定为 N S E W，随机下标按此取值
var Moves = [...]Move{MoveNorth, MoveSouth, MoveEast, MoveWest}

// RandomMove 从 r 取一次 [0,4) 的下标
func RandomMove(r Rand) Move {
	return Moves[r.Intn(len(Moves))]
}
