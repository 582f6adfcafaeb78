package components

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshComponent 可渲染的三角形网格（模型局部坐标）
type MeshComponent struct {
	Vertices []mgl32.Vec3
	// Indices 每三个下标组成一个三角形（逆时针为正面）
	Indices []uint16
	Color   color.RGBA
}

// TriangleCount 返回三角形数量
func (m *MeshComponent) TriangleCount() int {
	return len(m.Indices) / 3
}
