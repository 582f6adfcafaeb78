package systems

import (
	"cmp"
	"image"
	"image/color"
	"iter"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/skyflight/internal/orientation"
	"github.com/decker502/skyflight/pkg/components"
	"github.com/decker502/skyflight/pkg/ecs"
	"github.com/decker502/skyflight/pkg/entities"
	"github.com/decker502/skyflight/pkg/utils"
)

// 渲染参数
const (
	groundHalfLines    = 12    // 地面网格向每个方向绘制的线数
	celestialDistance  = 500.0 // 太阳/月亮放置在镜头前方的距离
	sunRadius          = 28
	moonRadius         = 18
	ambientLight       = 0.25
	projectileMinLight = 0.8 // 子弹近似自发光
	maxBatchVertices   = math.MaxUint16 - 2
)

var (
	sunColor  = color.RGBA{R: 255, G: 240, B: 190, A: 255}
	moonColor = color.RGBA{R: 220, G: 225, B: 240, A: 255}
	gridDay   = color.RGBA{R: 90, G: 120, B: 80, A: 255}
	gridNight = color.RGBA{R: 30, G: 40, B: 50, A: 255}
)

// RenderFrame 一帧渲染所需的全部输入
type RenderFrame struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
	// Particles 每个存活粒子的变换矩阵（按发射顺序）
	Particles iter.Seq[mgl32.Mat4]
	// Sky 可为 nil，此时使用正午光照
	Sky *components.SkyComponent
}

// shadedTriangle 已投影并着色的三角形
type shadedTriangle struct {
	points [3]utils.ScreenPoint
	depth  float32
	color  color.RGBA
}

// RenderSystem 软件投影渲染器
//
// 没有深度缓冲：所有三角形投影到屏幕后按深度从远到近排序（画家算法），
// 再批量提交给 DrawTriangles。法线经模型矩阵的逆转置变换，
// 使用双面平面光照，所以网格不依赖三角形绕序。
type RenderSystem struct {
	entityManager  *ecs.EntityManager
	projectileMesh *components.MeshComponent

	triangles []shadedTriangle // 复用，避免每帧分配
	vertices  []ebiten.Vertex
	indices   []uint16

	whiteImage *ebiten.Image
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager:  em,
		projectileMesh: entities.NewProjectileMesh(),
		triangles:      make([]shadedTriangle, 0, 1024),
		vertices:       make([]ebiten.Vertex, 0, 3072),
		indices:        make([]uint16, 0, 3072),
	}
}

// Draw 绘制一帧：天空 → 太阳/月亮 → 地面网格 → 网格模型
func (s *RenderSystem) Draw(screen *ebiten.Image, frame RenderFrame) {
	bounds := screen.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())

	s.drawSky(screen, frame.Sky, w, h)
	s.drawCelestial(screen, frame, w, h)
	s.drawGround(screen, frame, w, h)

	s.triangles = s.collectTriangles(s.triangles[:0], frame, w, h)
	s.drawTriangles(screen, s.triangles)
}

// TriangleCount 返回上一帧提交的三角形数量（HUD 用）
func (s *RenderSystem) TriangleCount() int {
	return len(s.triangles)
}

// drawSky 天顶到地平线的竖直渐变
func (s *RenderSystem) drawSky(screen *ebiten.Image, sky *components.SkyComponent, w, h float32) {
	if sky == nil {
		screen.Fill(color.RGBA{R: 120, G: 170, B: 230, A: 255})
		return
	}
	top := ZenithColor(sky)
	bottom := HorizonColor(sky)

	vs := []ebiten.Vertex{
		solidVertex(0, 0, top),
		solidVertex(w, 0, top),
		solidVertex(0, h, bottom),
		solidVertex(w, h, bottom),
	}
	is := []uint16{0, 1, 2, 1, 3, 2}
	screen.DrawTriangles(vs, is, s.white(), nil)
}

// drawCelestial 太阳和月亮：放在镜头周围的远处，只随镜头旋转不随镜头平移
func (s *RenderSystem) drawCelestial(screen *ebiten.Image, frame RenderFrame, w, h float32) {
	if frame.Sky == nil {
		return
	}
	sun := SunDirection(frame.Sky.TimeOfDay)
	vp := frame.Projection.Mul4(frame.View)

	draw := func(dir mgl32.Vec3, radius float32, clr color.RGBA) {
		if dir.Y() < -0.1 {
			return
		}
		p, ok := utils.Project(vp, frame.CameraPosition.Add(dir.Mul(celestialDistance)), w, h)
		if !ok {
			return
		}
		vector.DrawFilledCircle(screen, p.X, p.Y, radius, clr, true)
	}
	draw(sun, sunRadius, sunColor)
	draw(sun.Mul(-1), moonRadius, moonColor)
}

// drawGround 水平地面网格，以镜头所在格为中心
func (s *RenderSystem) drawGround(screen *ebiten.Image, frame RenderFrame, w, h float32) {
	level := float32(-30)
	spacing := float32(20)
	daylight := 1.0
	if frame.Sky != nil {
		level = frame.Sky.GroundLevel
		spacing = frame.Sky.GroundSpacing
		daylight = frame.Sky.Daylight
	}
	if spacing <= 0 {
		return
	}
	clr := utils.LerpColor(gridNight, gridDay, daylight)
	vp := frame.Projection.Mul4(frame.View)

	cx := float32(math.Floor(float64(frame.CameraPosition.X()/spacing))) * spacing
	cz := float32(math.Floor(float64(frame.CameraPosition.Z()/spacing))) * spacing
	extent := spacing * groundHalfLines

	for i := -groundHalfLines; i <= groundHalfLines; i++ {
		off := float32(i) * spacing
		lines := [2][2]mgl32.Vec3{
			{{cx + off, level, cz - extent}, {cx + off, level, cz + extent}},
			{{cx - extent, level, cz + off}, {cx + extent, level, cz + off}},
		}
		for _, l := range lines {
			a, b, ok := utils.ProjectSegment(vp, l[0], l[1], w, h)
			if !ok {
				continue
			}
			vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, 1, clr, true)
		}
	}
}

// collectTriangles 投影并着色飞机和所有粒子，按深度从远到近排序
func (s *RenderSystem) collectTriangles(dst []shadedTriangle, frame RenderFrame, w, h float32) []shadedTriangle {
	vp := frame.Projection.Mul4(frame.View)
	light, strength := lightFor(frame.Sky)

	for _, id := range ecs.GetEntitiesWith2[*components.MeshComponent, *components.FlightComponent](s.entityManager) {
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)
		flight, _ := ecs.GetComponent[*components.FlightComponent](s.entityManager, id)
		dst = appendMesh(dst, mesh, flight.Model, vp, light, strength, 0, w, h)
	}

	if frame.Particles != nil {
		for model := range frame.Particles {
			dst = appendMesh(dst, s.projectileMesh, model, vp, light, strength, projectileMinLight, w, h)
		}
	}

	slices.SortStableFunc(dst, func(a, b shadedTriangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
	return dst
}

// appendMesh 变换一个网格实例并追加可见三角形
func appendMesh(dst []shadedTriangle, mesh *components.MeshComponent, model, vp mgl32.Mat4,
	light mgl32.Vec3, strength, minLight float32, w, h float32) []shadedTriangle {
	mvp := vp.Mul4(model)
	normalMatrix := orientation.NormalMatrix(model)

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := mesh.Vertices[mesh.Indices[i]]
		v1 := mesh.Vertices[mesh.Indices[i+1]]
		v2 := mesh.Vertices[mesh.Indices[i+2]]

		var tri shadedTriangle
		visible := true
		for k, v := range [3]mgl32.Vec3{v0, v1, v2} {
			p, ok := utils.Project(mvp, v, w, h)
			if !ok {
				visible = false
				break
			}
			tri.points[k] = p
		}
		if !visible {
			continue
		}
		tri.depth = (tri.points[0].Depth + tri.points[1].Depth + tri.points[2].Depth) / 3

		normal := normalMatrix.Mul3x1(v1.Sub(v0).Cross(v2.Sub(v0)))
		brightness := float32(ambientLight)
		if l := normal.Len(); l > 0 {
			diffuse := float32(math.Abs(float64(normal.Mul(1 / l).Dot(light))))
			brightness += (1 - ambientLight) * diffuse * strength
		}
		brightness = max(brightness, minLight)
		tri.color = utils.ScaleColor(mesh.Color, float64(brightness))

		dst = append(dst, tri)
	}
	return dst
}

// lightFor 白天使用太阳方向，夜晚使用月光（更弱）
func lightFor(sky *components.SkyComponent) (mgl32.Vec3, float32) {
	if sky == nil {
		return mgl32.Vec3{0, 1, 0}, 1
	}
	sun := SunDirection(sky.TimeOfDay)
	if sun.Y() >= 0 {
		return sun, float32(0.35 + 0.65*sky.Daylight)
	}
	return sun.Mul(-1), 0.35
}

// drawTriangles 按顺序批量提交，单批顶点数受 uint16 下标限制
func (s *RenderSystem) drawTriangles(screen *ebiten.Image, tris []shadedTriangle) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	flush := func() {
		if len(s.vertices) == 0 {
			return
		}
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		screen.DrawTriangles(s.vertices, s.indices, s.white(), op)
		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
	}

	for _, tri := range tris {
		if len(s.vertices)+3 > maxBatchVertices {
			flush()
		}
		base := uint16(len(s.vertices))
		for _, p := range tri.points {
			s.vertices = append(s.vertices, solidVertex(p.X, p.Y, tri.color))
		}
		s.indices = append(s.indices, base, base+1, base+2)
	}
	flush()
}

// white 返回 1x1 白色贴图，用于纯色三角形
func (s *RenderSystem) white() *ebiten.Image {
	if s.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.whiteImage
}

func solidVertex(x, y float32, c color.RGBA) ebiten.Vertex {
	a := float32(c.A) / 255
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255 * a,
		ColorG: float32(c.G) / 255 * a,
		ColorB: float32(c.B) / 255 * a,
		ColorA: a,
	}
}
