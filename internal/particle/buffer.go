package particle

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/decker502/skyflight/internal/orientation"
)

const minCapacity = 16

// Buffer 按发射顺序保存粒子的环形缓冲区。
//
// 所有粒子初始寿命相同且每帧等量递减，所以最老的粒子总是最先到期，
// 过期只需要从队头弹出，无需优先队列。
// 容量始终是 2 的幂，满时翻倍扩容；粒子以值类型存放，不做单独的堆分配。
type Buffer struct {
	items []Particle
	head  int // 队头（最老粒子）下标
	count int

	config Config
}

// NewBuffer 创建粒子缓冲区
func NewBuffer(cfg Config) *Buffer {
	return &Buffer{
		items:  make([]Particle, minCapacity),
		config: cfg,
	}
}

// Config 返回缓冲区使用的参数
func (b *Buffer) Config() Config {
	return b.config
}

// Len 返回存活粒子数量
func (b *Buffer) Len() int {
	return b.count
}

// Spawn 在队尾追加一个满寿命粒子
func (b *Buffer) Spawn(direction, position mgl32.Vec3, transform mgl32.Mat4) {
	if b.count == len(b.items) {
		b.grow()
	}
	idx := (b.head + b.count) & (len(b.items) - 1)
	b.items[idx] = Particle{
		Direction:      direction,
		Position:       position,
		SpawnTransform: transform,
		RemainingLife:  b.config.Life,
	}
	b.count++
}

// Tick 推进一帧。
//
// 先用本帧的 dt 检查队头：RemainingLife <= dt 的粒子在这一帧就被移除
// （而不是减到非正数后的下一帧）。然后其余粒子寿命减 dt，沿方向移动。
func (b *Buffer) Tick(dt float32) {
	for b.count > 0 && b.items[b.head].RemainingLife <= dt {
		b.popFront()
	}

	mask := len(b.items) - 1
	step := b.config.Speed * dt
	for i := 0; i < b.count; i++ {
		p := &b.items[(b.head+i)&mask]
		p.RemainingLife -= dt
		p.Position = p.Position.Add(p.Direction.Mul(step))
	}
}

// Reset 清空所有粒子，保留已分配的容量
func (b *Buffer) Reset() {
	clear(b.items)
	b.head = 0
	b.count = 0
}

// All 按从老到新的顺序遍历存活粒子
func (b *Buffer) All() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		mask := len(b.items) - 1
		for i := 0; i < b.count; i++ {
			if !yield(b.items[(b.head+i)&mask]) {
				return
			}
		}
	}
}

// Renderables 按从老到新的顺序生成每个粒子的渲染矩阵：
// 发射时的变换矩阵，平移列替换为当前位置，再乘以按轴缩放。
// 缩放在模型空间生效，X 轴沿飞行方向。
// 每次调用都返回新的序列，可重复遍历。
func (b *Buffer) Renderables(scale mgl32.Vec3) iter.Seq[mgl32.Mat4] {
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return func(yield func(mgl32.Mat4) bool) {
		for p := range b.All() {
			if !yield(orientation.WithTranslation(p.SpawnTransform, p.Position).Mul4(s)) {
				return
			}
		}
	}
}

func (b *Buffer) popFront() {
	b.items[b.head] = Particle{}
	b.head = (b.head + 1) & (len(b.items) - 1)
	b.count--
}

// grow 容量翻倍，并把队列按顺序搬到新数组开头
func (b *Buffer) grow() {
	next := make([]Particle, len(b.items)*2)
	mask := len(b.items) - 1
	for i := 0; i < b.count; i++ {
		next[i] = b.items[(b.head+i)&mask]
	}
	b.items = next
	b.head = 0
}
