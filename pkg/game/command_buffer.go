package game

// CommandKind 输入命令类型
type CommandKind int

const (
	// CommandControl 飞行操纵（Direction 字段有效）
	CommandControl CommandKind = iota
	// CommandShoot 射击（Time 字段为触发时的时间戳）
	CommandShoot
	// CommandCameraNudge 键盘微调自由视角（X=yaw 方向, Y=pitch 方向，取值 -1/0/1）
	CommandCameraNudge
	// CommandZoom 滚轮缩放（Y 为滚动量）
	CommandZoom
	// CommandMouseLook 鼠标自由视角（X/Y 为光标位移像素）
	CommandMouseLook
	// CommandTogglePause 暂停/继续
	CommandTogglePause
	// CommandResetFlight 飞机回到出生点
	CommandResetFlight
	// CommandToggleHUD 显示/隐藏调试信息
	CommandToggleHUD
	// CommandToggleFullscreen 切换全屏
	CommandToggleFullscreen
)

// String 返回命令类型名称（用于日志）
func (k CommandKind) String() string {
	switch k {
	case CommandControl:
		return "Control"
	case CommandShoot:
		return "Shoot"
	case CommandCameraNudge:
		return "CameraNudge"
	case CommandZoom:
		return "Zoom"
	case CommandMouseLook:
		return "MouseLook"
	case CommandTogglePause:
		return "TogglePause"
	case CommandResetFlight:
		return "ResetFlight"
	case CommandToggleHUD:
		return "ToggleHUD"
	case CommandToggleFullscreen:
		return "ToggleFullscreen"
	default:
		return "Unknown"
	}
}

// ControlDirection 飞行操纵方向
type ControlDirection int

const (
	ControlUpward ControlDirection = iota
	ControlDownward
	ControlLeft
	ControlRight
)

// String 返回方向名称
func (d ControlDirection) String() string {
	switch d {
	case ControlUpward:
		return "Upward"
	case ControlDownward:
		return "Downward"
	case ControlLeft:
		return "Left"
	case ControlRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Command 一条输入命令
//
// 输入轮询只负责把命令写入 CommandBuffer，不直接修改任何场景状态；
// 场景在帧开始时统一消费。
type Command struct {
	Kind      CommandKind
	Direction ControlDirection
	X, Y      float32
	Time      float64
}

// CommandBuffer 单帧输入命令队列（单线程使用，不加锁）
type CommandBuffer struct {
	commands []Command
}

// NewCommandBuffer 创建命令队列
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{
		commands: make([]Command, 0, 16),
	}
}

// Push 追加命令
func (cb *CommandBuffer) Push(cmd Command) {
	cb.commands = append(cb.commands, cmd)
}

// Len 返回待处理命令数量
func (cb *CommandBuffer) Len() int {
	return len(cb.commands)
}

// Drain 按入队顺序处理所有命令并清空队列
// 处理过程中新压入的命令会在本次 Drain 中一并处理
func (cb *CommandBuffer) Drain(handle func(Command)) {
	for i := 0; i < len(cb.commands); i++ {
		handle(cb.commands[i])
	}
	cb.commands = cb.commands[:0]
}
