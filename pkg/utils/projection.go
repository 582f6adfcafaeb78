package utils

import "github.com/go-gl/mathgl/mgl32"

// ScreenPoint 投影到屏幕上的点
type ScreenPoint struct {
	X, Y float32
	// Depth 裁剪空间 w 分量（透视投影下即视空间深度），越大越远
	Depth float32
}

// nearDistance 裁剪空间中 z+w 的距离，>= 0 表示在近平面前方
func nearDistance(clip mgl32.Vec4) float32 {
	return clip.Z() + clip.W()
}

// toScreen 透视除法 + 视口变换（屏幕 y 轴向下）
func toScreen(clip mgl32.Vec4, width, height float32) ScreenPoint {
	invW := 1 / clip.W()
	ndcX := clip.X() * invW
	ndcY := clip.Y() * invW
	return ScreenPoint{
		X:     (ndcX + 1) * 0.5 * width,
		Y:     (1 - ndcY) * 0.5 * height,
		Depth: clip.W(),
	}
}

// Project 把世界坐标点投影到屏幕
//
// 参数:
//   - mvp: projection * view * model
//   - v: 模型空间坐标
//   - width, height: 屏幕尺寸（像素）
//
// 返回:
//   - ScreenPoint: 屏幕坐标
//   - bool: 点在近平面后方时返回 false
func Project(mvp mgl32.Mat4, v mgl32.Vec3, width, height float32) (ScreenPoint, bool) {
	clip := mvp.Mul4x1(v.Vec4(1))
	if nearDistance(clip) < 0 || clip.W() <= 0 {
		return ScreenPoint{}, false
	}
	return toScreen(clip, width, height), true
}

// ProjectSegment 投影一条线段，穿过近平面的部分被裁掉
//
// 返回:
//   - a, b: 裁剪后端点的屏幕坐标
//   - bool: 线段完全在近平面后方时返回 false
func ProjectSegment(mvp mgl32.Mat4, from, to mgl32.Vec3, width, height float32) (ScreenPoint, ScreenPoint, bool) {
	ca := mvp.Mul4x1(from.Vec4(1))
	cb := mvp.Mul4x1(to.Vec4(1))
	da, db := nearDistance(ca), nearDistance(cb)

	if da < 0 && db < 0 {
		return ScreenPoint{}, ScreenPoint{}, false
	}

	// 一端在近平面后方：沿线段插值到 z+w=0 处
	if da < 0 {
		ca = lerpVec4(ca, cb, da/(da-db))
	} else if db < 0 {
		cb = lerpVec4(cb, ca, db/(db-da))
	}

	if ca.W() <= 0 || cb.W() <= 0 {
		return ScreenPoint{}, ScreenPoint{}, false
	}
	return toScreen(ca, width, height), toScreen(cb, width, height), true
}

func lerpVec4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
