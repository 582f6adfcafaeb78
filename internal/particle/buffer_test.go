package particle

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skyflight/internal/orientation"
)

func newTestBuffer(life, speed float32) *Buffer {
	return NewBuffer(Config{Life: life, Speed: speed})
}

// tag 用 Direction.X 作为粒子标识，便于断言顺序
func tags(b *Buffer) []float32 {
	var out []float32
	for p := range b.All() {
		out = append(out, p.Direction.X())
	}
	return out
}

func TestSpawn_FullLife(t *testing.T) {
	b := newTestBuffer(2, 10)
	b.Spawn(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{5, 5, 5}, mgl32.Ident4())

	require.Equal(t, 1, b.Len())
	for p := range b.All() {
		assert.Equal(t, float32(2), p.RemainingLife)
		assert.Equal(t, mgl32.Vec3{5, 5, 5}, p.Position)
	}
}

func TestTick_MovesAndDecrements(t *testing.T) {
	b := newTestBuffer(2, 10)
	b.Spawn(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, mgl32.Ident4())

	b.Tick(0.5)

	for p := range b.All() {
		assert.InDelta(t, 1.5, p.RemainingLife, 1e-6)
		assert.InDelta(t, 5.0, p.Position.Z(), 1e-6)
	}
}

// TestTick_ExpiresOnSameFrame 寿命恰好等于 dt 的粒子在这一帧就被移除
func TestTick_ExpiresOnSameFrame(t *testing.T) {
	b := newTestBuffer(1, 0)
	b.Spawn(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Ident4())

	b.Tick(0.25) // 0.75
	b.Tick(0.25) // 0.5
	b.Tick(0.25) // 0.25
	require.Equal(t, 1, b.Len())

	b.Tick(0.25)
	assert.Equal(t, 0, b.Len())
}

// TestTick_ExpiryOrdering 在 t0<t1<t2 发射，超过寿命后只剩 spawnTime+L > now 的粒子
func TestTick_ExpiryOrdering(t *testing.T) {
	const life = 1.0
	const dt = 0.25
	b := newTestBuffer(life, 1)

	spawnTimes := map[float32]float32{} // tag -> spawn time
	now := float32(0)
	for i, tag := range []float32{1, 2, 3} {
		if i > 0 {
			b.Tick(dt)
			now += dt
		}
		b.Spawn(mgl32.Vec3{tag, 0, 0}, mgl32.Vec3{}, mgl32.Ident4())
		spawnTimes[tag] = now
	}
	assert.Equal(t, []float32{1, 2, 3}, tags(b))

	for now < 1.5 {
		b.Tick(dt)
		now += dt

		var want []float32
		for _, tag := range []float32{1, 2, 3} {
			if spawnTimes[tag]+life > now {
				want = append(want, tag)
			}
		}
		assert.Equal(t, want, tags(b), "now=%v", now)
	}
	assert.Equal(t, 0, b.Len())
}

// TestBuffer_GrowKeepsOrder 环绕后扩容，顺序保持不变
func TestBuffer_GrowKeepsOrder(t *testing.T) {
	b := newTestBuffer(100, 0)

	// 先让 head 移动到中间
	for i := 0; i < 10; i++ {
		b.Spawn(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{}, mgl32.Ident4())
	}
	for b.Len() > 0 {
		b.popFront()
	}

	for i := 0; i < 40; i++ {
		b.Spawn(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{}, mgl32.Ident4())
	}

	got := tags(b)
	require.Len(t, got, 40)
	for i, v := range got {
		assert.Equal(t, float32(i), v)
	}
	assert.Equal(t, 64, len(b.items))
}

func TestRenderables(t *testing.T) {
	b := newTestBuffer(5, 2)
	spawn := mgl32.Rotate3DY(mgl32.DegToRad(90)).Mat4()
	spawn[12], spawn[13], spawn[14] = 100, 100, 100

	b.Spawn(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 2, 3}, spawn)
	b.Spawn(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{4, 5, 6}, spawn)

	var got []mgl32.Mat4
	for m := range b.Renderables(mgl32.Vec3{0.5, 0.5, 0.5}) {
		got = append(got, m)
	}
	require.Len(t, got, 2)

	// 平移列替换为当前位置，旋转部分乘以缩放
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, got[0].Col(3))
	assert.Equal(t, mgl32.Vec4{4, 5, 6, 1}, got[1].Col(3))
	want := spawn.Mat3().Mul(0.5)
	for i := range want {
		assert.InDelta(t, want[i], got[0].Mat3()[i], 1e-6)
	}

	// 可重复遍历
	count := 0
	for range b.Renderables(mgl32.Vec3{0.5, 0.5, 0.5}) {
		count++
	}
	assert.Equal(t, 2, count)
}

// TestRenderables_AxisScale 非均匀缩放作用在模型空间：
// X 轴（飞行方向）拉长，Y/Z 变细，结果仍随发射时的朝向旋转
func TestRenderables_AxisScale(t *testing.T) {
	b := newTestBuffer(5, 0)
	spawn := orientation.ModelMatrix(70, 20, 30, mgl32.Vec3{9, 9, 9})
	b.Spawn(mgl32.Vec3{}, mgl32.Vec3{1, 2, 3}, spawn)

	scale := mgl32.Vec3{0.4, 0.04, 0.04}
	var got []mgl32.Mat4
	for m := range b.Renderables(scale) {
		got = append(got, m)
	}
	require.Len(t, got, 1)
	m := got[0]

	front, up := orientation.Basis(70, 20, 30)
	assert.InDelta(t, 0.4, m.Col(0).Vec3().Len(), 1e-6)
	assert.InDelta(t, 0.04, m.Col(1).Vec3().Len(), 1e-6)
	assert.InDelta(t, 0.04, m.Col(2).Vec3().Len(), 1e-6)
	assert.True(t, m.Col(0).Vec3().ApproxEqualThreshold(front.Mul(0.4), 1e-6))
	assert.True(t, m.Col(1).Vec3().ApproxEqualThreshold(up.Mul(0.04), 1e-6))

	// 模型空间的机头点 (1,0,0) 落在 position + front*0.4
	tip := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, tip.ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}.Add(front.Mul(0.4)), 1e-5))
}

func TestRenderables_EarlyStop(t *testing.T) {
	b := newTestBuffer(5, 0)
	for i := 0; i < 5; i++ {
		b.Spawn(mgl32.Vec3{}, mgl32.Vec3{float32(i), 0, 0}, mgl32.Ident4())
	}

	count := 0
	for range b.Renderables(mgl32.Vec3{1, 1, 1}) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestReset(t *testing.T) {
	b := newTestBuffer(5, 0)
	for i := 0; i < 20; i++ {
		b.Spawn(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Ident4())
	}
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, tags(b))
}
