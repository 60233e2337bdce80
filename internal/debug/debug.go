package debug

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime debugging features: FPS and memory text and the selection rays.
// Text overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	Lines        *Lines
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with text overlays hidden. Rays stay on screen for rayLifetime.
func New(rayLifetime time.Duration) *Debug {
	return &Debug{Lines: NewLines(rayLifetime)}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw3D draws the live rays. Call inside BeginMode3D.
func (d *Debug) Draw3D() {
	d.Lines.Prune(d.Lines.now())
	d.Lines.Each(func(l Line) {
		c := rl.Yellow
		if l.Hit {
			c = rl.Green
		}
		rl.DrawLine3D(vec3(l.From), vec3(l.To), c)
		if l.Hit {
			rl.DrawSphere(vec3(l.To), 0.08, c)
		}
	})
}

// Draw renders the enabled text overlays at the top-right in green: FPS, heap allocation and the
// number of live rays. Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	y := int32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d  Rays: %d", rl.GetFPS(), d.Lines.Len())
		}
		drawRight(d.lastFpsText, y)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y)
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	x := int32(rl.GetScreenWidth()) - rl.MeasureText(text, fpsFontSize) - fpsPadding
	rl.DrawText(text, x, y, fpsFontSize, rl.Green)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// Line is one diagnostic ray. Hit is true when it stopped on geometry.
type Line struct {
	From, To mgl32.Vec3
	Hit      bool
	expires  time.Time
}

// Lines keeps rays on screen for a fixed time after they are drawn.
type Lines struct {
	mu       sync.Mutex
	lifetime time.Duration
	lines    []Line
	now      func() time.Time
	Enabled  bool
}

// NewLines returns an enabled buffer whose lines live for lifetime.
func NewLines(lifetime time.Duration) *Lines {
	return &Lines{lifetime: lifetime, now: time.Now, Enabled: true}
}

// DrawLine queues a ray. Nothing is kept while disabled.
func (l *Lines) DrawLine(from, to mgl32.Vec3, hit bool) {
	if !l.Enabled {
		return
	}
	l.mu.Lock()
	l.lines = append(l.lines, Line{From: from, To: to, Hit: hit, expires: l.now().Add(l.lifetime)})
	l.mu.Unlock()
}

// Prune drops lines that expired at or before now.
func (l *Lines) Prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.lines[:0]
	for _, ln := range l.lines {
		if ln.expires.After(now) {
			kept = append(kept, ln)
		}
	}
	clear(l.lines[len(kept):])
	l.lines = kept
}

// Len returns the number of live lines.
func (l *Lines) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Each calls fn for every live line in draw order.
func (l *Lines) Each(fn func(Line)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ln := range l.lines {
		fn(ln)
	}
}
