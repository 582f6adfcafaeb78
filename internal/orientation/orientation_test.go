package orientation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

// TestBasis_Orthonormal 遍历合法角度范围，验证 front/up 正交且为单位向量
func TestBasis_Orthonormal(t *testing.T) {
	for yaw := float32(-720); yaw <= 720; yaw += 37 {
		for pitch := float32(-89); pitch <= 89; pitch += 11.125 {
			for roll := float32(-89); roll <= 89; roll += 8.9 {
				front, up := Basis(yaw, pitch, roll)

				assert.InDelta(t, 1.0, front.Len(), tolerance, "|front| yaw=%v pitch=%v roll=%v", yaw, pitch, roll)
				assert.InDelta(t, 1.0, up.Len(), tolerance, "|up| yaw=%v pitch=%v roll=%v", yaw, pitch, roll)
				assert.InDelta(t, 0.0, front.Dot(up), tolerance, "front·up yaw=%v pitch=%v roll=%v", yaw, pitch, roll)
			}
		}
	}
}

// closedForm 用 float64 计算三列 front、up、side，作为对照
func closedForm(yaw, pitch, roll float64) (front, up, side [3]float64) {
	sy, cy := math.Sincos(yaw * math.Pi / 180)
	sp, cp := math.Sincos(pitch * math.Pi / 180)
	sr, cr := math.Sincos(roll * math.Pi / 180)

	front = [3]float64{cp * cy, sp, cp * sy}
	up = [3]float64{sr*sy - sp*cr*cy, cp * cr, -sr*cy - sp*cr*sy}
	side = [3]float64{-sp*sr*cy - cr*sy, cp * sr, cr*cy - sp*sr*sy}
	return front, up, side
}

func assertVec(t *testing.T, want [3]float64, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], float64(got[i]), tolerance, msgAndArgs...)
	}
}

// TestRotation_ClosedFormTable 一般角度下逐项核对 Basis 与 ModelMatrix 的每一列
func TestRotation_ClosedFormTable(t *testing.T) {
	tests := []struct {
		name             string
		yaw, pitch, roll float32
	}{
		{"identity", 0, 0, 0},
		{"yaw only", 70, 0, 0},
		{"pitch only", 0, 45, 0},
		{"roll only", 0, 0, 30},
		{"mixed", 45, 20, 30},
		{"heading 90 climbing", 90, 30, 0},
		{"heading 90 banked", 90, 30, -40},
		{"negative angles", -135, -60, 75},
		{"large yaw", 123, -33, 71},
		{"near limits", -250, 89, -89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantFront, wantUp, wantSide := closedForm(float64(tt.yaw), float64(tt.pitch), float64(tt.roll))

			front, up := Basis(tt.yaw, tt.pitch, tt.roll)
			assertVec(t, wantFront, front, "front")
			assertVec(t, wantUp, up, "up")

			m := ModelMatrix(tt.yaw, tt.pitch, tt.roll, mgl32.Vec3{1, 2, 3})
			assertVec(t, wantFront, m.Col(0).Vec3(), "col 0")
			assertVec(t, wantUp, m.Col(1).Vec3(), "col 1")
			assertVec(t, wantSide, m.Col(2).Vec3(), "col 2")
			assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, m.Col(3))

			// 第三列是 front × up，矩阵为右手系旋转
			assert.True(t, front.Cross(up).ApproxEqualThreshold(m.Col(2).Vec3(), tolerance))
		})
	}
}

// TestRotation_MatchesElementalProduct 闭式解等于 Ry(-yaw)·Rz(pitch)·Rx(-roll)
func TestRotation_MatchesElementalProduct(t *testing.T) {
	cases := []struct{ yaw, pitch, roll float32 }{
		{70, 0, 0},
		{0, 45, 0},
		{0, 0, 30},
		{45, 20, 30},
		{-250, 89, -89},
	}

	for _, c := range cases {
		want := mgl32.Rotate3DY(mgl32.DegToRad(-c.yaw)).
			Mul3(mgl32.Rotate3DZ(mgl32.DegToRad(c.pitch))).
			Mul3(mgl32.Rotate3DX(mgl32.DegToRad(-c.roll)))
		got := Rotation(c.yaw, c.pitch, c.roll)

		for i := range want {
			assert.InDelta(t, want[i], got[i], tolerance, "entry %d for %+v", i, c)
		}
	}
}

// TestBasis_ClosedForm 验证 yaw=70 时机头从 +X 转向 +Z
func TestBasis_ClosedForm(t *testing.T) {
	front, up := Basis(70, 0, 0)

	rad := 70 * math.Pi / 180
	assert.InDelta(t, math.Cos(rad), front.X(), tolerance)
	assert.InDelta(t, 0.0, front.Y(), tolerance)
	assert.InDelta(t, math.Sin(rad), front.Z(), tolerance)

	assert.InDelta(t, 0.0, up.X(), tolerance)
	assert.InDelta(t, 1.0, up.Y(), tolerance)
	assert.InDelta(t, 0.0, up.Z(), tolerance)
}

// TestBasis_PitchRaisesNose 正 pitch 抬头，正 roll 使 up 倒向 -Z（左侧）
func TestBasis_PitchRaisesNose(t *testing.T) {
	front, _ := Basis(0, 30, 0)
	assert.Greater(t, front.Y(), float32(0))

	_, up := Basis(0, 0, 30)
	assert.Less(t, up.Z(), float32(0))
}

// TestBasis_PitchIndependentOfHeading 任何航向下 front.y 都等于 sin(pitch)
func TestBasis_PitchIndependentOfHeading(t *testing.T) {
	for yaw := float32(-360); yaw <= 360; yaw += 15 {
		for _, pitch := range []float32{-60, -10, 0, 30, 89} {
			for _, roll := range []float32{-45, 0, 45} {
				front, _ := Basis(yaw, pitch, roll)
				want := math.Sin(float64(pitch) * math.Pi / 180)
				assert.InDelta(t, want, front.Y(), tolerance, "yaw=%v pitch=%v roll=%v", yaw, pitch, roll)
			}
		}
	}
}

func TestModelMatrix_Layout(t *testing.T) {
	pos := mgl32.Vec3{3, -4, 5}
	m := ModelMatrix(40, 10, -20, pos)
	r := Rotation(40, 10, -20)

	// 最后一列是位置
	assert.Equal(t, mgl32.Vec4{3, -4, 5, 1}, m.Col(3))
	// 最后一行前三个元素为 0
	assert.Equal(t, float32(0), m.At(3, 0))
	assert.Equal(t, float32(0), m.At(3, 1))
	assert.Equal(t, float32(0), m.At(3, 2))
	// 左上 3x3 为旋转
	assert.Equal(t, r, m.Mat3())

	// 模型矩阵作用于原点得到位置，作用于 +X 得到 position+front
	front, _ := Basis(40, 10, -20)
	tip := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, tip.ApproxEqualThreshold(pos.Add(front), tolerance))
}

func TestNormalMatrix_PureRotation(t *testing.T) {
	m := ModelMatrix(15, -60, 35, mgl32.Vec3{10, 20, 30})
	n := NormalMatrix(m)

	// 纯旋转的逆转置等于其本身
	r := m.Mat3()
	for i := range r {
		require.InDelta(t, r[i], n[i], tolerance)
	}
}

func TestWithTranslation(t *testing.T) {
	m := ModelMatrix(90, 0, 0, mgl32.Vec3{1, 2, 3})
	moved := WithTranslation(m, mgl32.Vec3{7, 8, 9})

	assert.Equal(t, mgl32.Vec4{7, 8, 9, 1}, moved.Col(3))
	assert.Equal(t, m.Mat3(), moved.Mat3())
	// 原矩阵不受影响
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, m.Col(3))
}

func TestClampAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{88.9, 88.9},
		{89, 89},
		{120, 89},
		{-89.5, -89},
	}
	for _, tt := range tests {
		if got := ClampAngle(tt.in, 89); got != tt.want {
			t.Errorf("ClampAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
