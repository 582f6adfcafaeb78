// Package orientation 把欧拉角 (yaw, pitch, roll) 转换为基向量和模型矩阵。
//
// 旋转矩阵按行向量写法的 Roll · Pitch · Yaw 展开，再按列主序读入，
// 等价于列向量写法的 Ry(-yaw) · Rz(pitch) · Rx(-roll)：
//   - yaw   正值使机头从 +X 转向 +Z
//   - pitch 正值使机头抬向 +Y
//   - roll  正值使 up 倒向 -Z（向左压坡度）
//
// 飞机和追尾镜头都必须通过本包推导 front/up，不能各自使用不同的乘法顺序，
// 否则镜头与飞机的视觉对齐会被破坏。
//
// 本包所有函数都是纯函数，没有错误返回。
package orientation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// UnitX 机体前向（局部坐标）
	UnitX = mgl32.Vec3{1, 0, 0}
	// UnitY 机体上方向（局部坐标）
	UnitY = mgl32.Vec3{0, 1, 0}
)

// Rotation 返回 3x3 旋转矩阵（角度单位：度），三列依次为 front、up、side：
//
//	front = ( cθcψ,            sθ,    cθsψ           )
//	up    = ( sφsψ - sθcφcψ,   cθcφ,  -sφcψ - sθcφsψ )
//	side  = ( -sθsφcψ - cφsψ,  cθsφ,  cφcψ - sθsφsψ  )
//
// 其中 ψ = yaw, θ = pitch, φ = roll。side = front × up。
func Rotation(yaw, pitch, roll float32) mgl32.Mat3 {
	sy, cy := sincos(yaw)
	sp, cp := sincos(pitch)
	sr, cr := sincos(roll)

	// mgl32 矩阵按列主序存储
	return mgl32.Mat3{
		cp * cy, sp, cp * sy,
		sr*sy - sp*cr*cy, cp * cr, -sr*cy - sp*cr*sy,
		-sp*sr*cy - cr*sy, cp * sr, cr*cy - sp*sr*sy,
	}
}

// Basis 返回当前角度下的 front 和 up 单位向量。
//
//	front = normalize(R · UnitX)
//	up    = normalize(R · UnitY)
func Basis(yaw, pitch, roll float32) (front, up mgl32.Vec3) {
	r := Rotation(yaw, pitch, roll)
	front = r.Mul3x1(UnitX).Normalize()
	up = r.Mul3x1(UnitY).Normalize()
	return front, up
}

// ModelMatrix 返回模型矩阵：左上 3x3 为旋转，最后一列为位置。
func ModelMatrix(yaw, pitch, roll float32, position mgl32.Vec3) mgl32.Mat4 {
	r := Rotation(yaw, pitch, roll)
	return mgl32.Mat4{
		r[0], r[1], r[2], 0,
		r[3], r[4], r[5], 0,
		r[6], r[7], r[8], 0,
		position[0], position[1], position[2], 1,
	}
}

// NormalMatrix 返回模型矩阵左上 3x3 的逆转置，用于变换法线。
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}

// WithTranslation 返回替换了平移列的矩阵副本。
func WithTranslation(m mgl32.Mat4, position mgl32.Vec3) mgl32.Mat4 {
	m[12] = position[0]
	m[13] = position[1]
	m[14] = position[2]
	return m
}

// ClampAngle 把角度限制在 [-limit, limit]。
func ClampAngle(deg, limit float32) float32 {
	return mgl32.Clamp(deg, -limit, limit)
}

func sincos(deg float32) (s, c float32) {
	rad := mgl32.DegToRad(deg)
	return math32.Sin(rad), math32.Cos(rad)
}
