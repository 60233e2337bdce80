// Package selection turns pointer gestures into a set of selected units. A click picks the first
// selectable under the pointer; a drag sweeps the screen rectangle into a world-space volume and
// selects whatever the physics world reports inside it on the next step. Modifier keys held at the
// start of the gesture make the result additive or subtractive. Hover is tracked every frame,
// independently of gestures.
//
// The package is single-threaded: Update, PhysicsTick and Disable must be called from the game loop.
package selection

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"rts-select/internal/input"
	"rts-select/internal/physics"
)

// Camera projects screen points into world rays.
type Camera interface {
	ScreenPointToRay(p mgl32.Vec2) physics.Ray
	FarClip() float32
}

// World is the physics the selector queries.
type World interface {
	Raycaster
	RaycastAll(r physics.Ray, maxDist float32, mask physics.Mask) []physics.Hit
	CapsuleCastAll(r physics.Ray, radius, maxDist float32, mask physics.Mask) []physics.Hit
	Attach(t *physics.Trigger)
	Detach(t *physics.Trigger)
}

// Overlay draws the drag rectangle.
type Overlay interface {
	Show(center, size mgl32.Vec2)
	Hide()
}

// LineDrawer receives diagnostic rays. hit tells whether the ray stopped on geometry.
type LineDrawer interface {
	DrawLine(from, to mgl32.Vec3, hit bool)
}

// Cursor toggles the visibility of the system pointer.
type Cursor interface {
	SetVisible(visible bool)
}

// Context is what the selector reads each frame.
type Context struct {
	Input  input.Snapshot
	Camera Camera
	World  World
}

// State is the gesture state of a Selector.
type State uint8

const (
	StateIdle State = iota
	// StateGestureStarted: pointer is down and has not moved past the drag threshold.
	StateGestureStarted
	// StateDragPending: pointer is down and the drag rectangle is shown.
	StateDragPending
	// StateAwaitingPhysics: the drag volume is attached and waits for one physics step.
	StateAwaitingPhysics
	// StateConfirmed: candidates are being reconciled with the selection.
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateGestureStarted:
		return "gesture_started"
	case StateDragPending:
		return "drag_pending"
	case StateAwaitingPhysics:
		return "awaiting_physics"
	case StateConfirmed:
		return "confirmed"
	default:
		return "idle"
	}
}

// Settings tunes a Selector.
type Settings struct {
	// Team is the only team whose units can be selected.
	Team int
	// ClickRadius > 0 turns click picking into a capsule cast of that radius.
	ClickRadius float32
	// MinBoxSize is the smallest drag rectangle side, in screen units.
	MinBoxSize float32
	// DragThreshold is how far, in screen units, the pointer must move before a click becomes a drag.
	DragThreshold float32
	// FarDistance caps casts; 0 uses the camera's far clip distance.
	FarDistance float32
	UnitMask    physics.Mask
	GroundMask  physics.Mask
}

// DefaultSettings returns team 1, ray picking, a 2 unit minimum box and a 1 unit drag threshold.
func DefaultSettings() Settings {
	return Settings{
		Team:          1,
		MinBoxSize:    MinimumBoxSize,
		DragThreshold: 1,
		UnitMask:      physics.AllLayers,
		GroundMask:    physics.AllLayers,
	}
}

func (s Settings) normalized() Settings {
	if s.MinBoxSize <= 0 {
		s.MinBoxSize = MinimumBoxSize
	}
	if s.DragThreshold <= 0 {
		s.DragThreshold = 1
	}
	if s.ClickRadius < 0 {
		s.ClickRadius = 0
	}
	if s.FarDistance < 0 {
		s.FarDistance = 0
	}
	return s
}

// Option configures optional collaborators of a Selector.
type Option func(*Selector)

// WithOverlay sets the drag rectangle overlay.
func WithOverlay(o Overlay) Option {
	return func(s *Selector) { s.overlay = o }
}

// WithLines sets the receiver of diagnostic rays.
func WithLines(l LineDrawer) Option {
	return func(s *Selector) { s.lines = l }
}

// WithCursor lets the selector hide the pointer while a gesture is in progress.
func WithCursor(c Cursor) Option {
	return func(s *Selector) { s.cursor = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.log = l
		}
	}
}

// Selector owns the current selection and hover of one player.
type Selector struct {
	settings Settings
	log      *zap.Logger
	overlay  Overlay
	lines    LineDrawer
	cursor   Cursor

	state    State
	start    mgl32.Vec2
	modifier Modifier
	gesture  uint64

	selection *Set
	pending   *Set
	hover     Selectable

	scratch scratch
	trigger physics.Trigger
	world   World // world holding trigger while it is attached

	disabled bool
}

// New returns an idle selector.
func New(settings Settings, opts ...Option) *Selector {
	s := &Selector{
		settings:  settings.normalized(),
		log:       zap.NewNop(),
		selection: NewSet(),
		pending:   NewSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the active settings.
func (s *Selector) Settings() Settings {
	return s.settings
}

// SetTeam changes the selectable team. The current selection is kept.
func (s *Selector) SetTeam(team int) {
	s.settings.Team = team
}

// SetClickRadius changes the click pick radius; negative values mean 0.
func (s *Selector) SetClickRadius(r float32) {
	s.settings.ClickRadius = r
	s.settings = s.settings.normalized()
}

// State returns the gesture state.
func (s *Selector) State() State {
	return s.state
}

// Selection returns the selected entities in selection order.
func (s *Selector) Selection() []Selectable {
	return s.selection.Items()
}

// IsSelected reports whether x is in the selection.
func (s *Selector) IsSelected(x Selectable) bool {
	return s.selection.Contains(x)
}

// Hovered returns the entity under the pointer, or nil.
func (s *Selector) Hovered() Selectable {
	return s.hover
}

// Enabled reports whether Update processes input.
func (s *Selector) Enabled() bool {
	return !s.disabled
}

// Update advances the selector by one frame.
func (s *Selector) Update(ctx *Context) {
	if s.disabled {
		return
	}
	in := ctx.Input
	if in.CursorVisible && s.state != StateDragPending && s.state != StateAwaitingPhysics {
		s.updateHover(ctx)
	}
	if in.Down {
		s.begin(in)
	}
	if s.state == StateGestureStarted || s.state == StateDragPending {
		s.track(in.Pointer)
	}
	if in.Up {
		s.end(ctx, in.Pointer)
	}
}

// PhysicsTick must be called after every physics step. It finishes a drag once the world has
// stepped with the selection volume attached.
func (s *Selector) PhysicsTick() {
	if s.state != StateAwaitingPhysics || !s.trigger.Evaluated() {
		return
	}
	s.releaseVolume()
	s.confirm()
}

// ClearSelection deselects everything outside of a gesture.
func (s *Selector) ClearSelection() {
	if s.state != StateIdle {
		return
	}
	s.apply(Reconcile(None, nil, s.selection))
}

// Disable tears the selector down: an attached volume is detached and released, the overlay is
// hidden, the pointer is shown again and hover is cleared. The selection is kept. Disabling twice
// is a no-op.
func (s *Selector) Disable() {
	if s.disabled {
		return
	}
	s.disabled = true
	if s.state != StateIdle {
		s.log.Debug("gesture abandoned", zap.Uint64("gesture", s.gesture), zap.Stringer("state", s.state))
	}
	s.releaseVolume()
	s.pending.Clear()
	if s.state == StateGestureStarted || s.state == StateDragPending {
		s.hideOverlay()
		s.setCursor(true)
	}
	s.state = StateIdle
	if s.hover != nil {
		s.hover.HoverExit()
		s.hover = nil
	}
}

// Enable resumes input processing after Disable.
func (s *Selector) Enable() {
	s.disabled = false
}

func (s *Selector) begin(in input.Snapshot) {
	if s.state != StateIdle {
		s.log.Debug("gesture ignored", zap.Stringer("state", s.state))
		return
	}
	s.gesture++
	s.start = in.Pointer
	s.modifier = ModifierOf(in)
	s.pending.Clear()
	s.state = StateGestureStarted
	s.setCursor(false)
	s.log.Debug("gesture started",
		zap.Uint64("gesture", s.gesture),
		zap.Stringer("modifier", s.modifier),
		zap.Float32("x", s.start.X()),
		zap.Float32("y", s.start.Y()))
}

func (s *Selector) track(p mgl32.Vec2) {
	if s.state == StateGestureStarted && p.Sub(s.start).Len() > s.settings.DragThreshold {
		s.state = StateDragPending
		s.log.Debug("drag started", zap.Uint64("gesture", s.gesture))
	}
	if s.state == StateDragPending && s.overlay != nil {
		s.overlay.Show(BoxOverlay(s.start, p, s.settings.MinBoxSize))
	}
}

func (s *Selector) end(ctx *Context, p mgl32.Vec2) {
	switch s.state {
	case StateGestureStarted:
		s.setCursor(true)
		s.clickQuery(ctx, p)
		s.confirm()
	case StateDragPending:
		s.hideOverlay()
		s.setCursor(true)
		if !s.dragQuery(ctx, p) {
			s.confirm()
			return
		}
		s.state = StateAwaitingPhysics
	}
}

func (s *Selector) far(cam Camera) float32 {
	if s.settings.FarDistance > 0 {
		return s.settings.FarDistance
	}
	return cam.FarClip()
}

// clickQuery adds the first selectable under p to the pending set.
func (s *Selector) clickQuery(ctx *Context, p mgl32.Vec2) {
	ray := BuildRay(ctx.Camera, p)
	far := s.far(ctx.Camera)
	if s.lines != nil {
		s.lines.DrawLine(ray.Origin, ray.At(far), false)
	}
	var hits []physics.Hit
	if s.settings.ClickRadius > 0 {
		hits = ctx.World.CapsuleCastAll(ray, s.settings.ClickRadius, far, s.settings.UnitMask)
	} else {
		hits = ctx.World.RaycastAll(ray, far, s.settings.UnitMask)
	}
	for _, h := range hits {
		sel, ok := selectableOf(h.Body)
		if !ok {
			continue
		}
		s.offer(sel)
		return
	}
}

// dragQuery builds the volume between the gesture start and p and attaches it to the world.
// It reports false when the volume is degenerate and nothing was attached.
func (s *Selector) dragQuery(ctx *Context, p mgl32.Vec2) bool {
	rect := CorrectRect(s.start, p, s.settings.MinBoxSize)
	vol := s.scratch.acquire(s.gesture)
	if !BuildVolume(vol, ctx.Camera, ctx.World, rect, s.far(ctx.Camera), s.settings.GroundMask, s.lines) {
		s.log.Debug("degenerate selection rectangle", zap.Uint64("gesture", s.gesture))
		s.scratch.release(s.gesture)
		return false
	}
	hull, ok := vol.Hull()
	if !ok {
		s.log.Debug("degenerate selection volume", zap.Uint64("gesture", s.gesture))
		s.scratch.release(s.gesture)
		return false
	}
	s.trigger = physics.Trigger{
		Hull: hull,
		Mask: s.settings.UnitMask,
		OnEnter: func(b *physics.Body) {
			if sel, ok := selectableOf(b); ok {
				s.offer(sel)
			}
		},
	}
	s.world = ctx.World
	s.world.Attach(&s.trigger)
	s.log.Debug("selection volume attached",
		zap.Uint64("gesture", s.gesture),
		zap.Float32("width", rect.Width()),
		zap.Float32("height", rect.Height()))
	return true
}

// offer adds a candidate that passes the team filter.
func (s *Selector) offer(sel Selectable) {
	if sel.Team() != s.settings.Team {
		return
	}
	s.pending.Add(sel)
}

func (s *Selector) confirm() {
	s.state = StateConfirmed
	plan := Reconcile(s.modifier, s.pending, s.selection)
	s.apply(plan)
	s.log.Debug("selection confirmed",
		zap.Uint64("gesture", s.gesture),
		zap.Stringer("modifier", s.modifier),
		zap.Int("candidates", s.pending.Len()),
		zap.Int("selected", s.selection.Len()))
	s.pending.Clear()
	s.state = StateIdle
}

func (s *Selector) apply(plan Plan) {
	for _, x := range plan.Deselect {
		x.Deselect()
	}
	for _, x := range plan.Select {
		x.Select()
	}
	s.selection = plan.Next
}

// releaseVolume detaches the trigger and frees the volume buffer. Safe to call at any time.
func (s *Selector) releaseVolume() {
	if s.world != nil {
		s.world.Detach(&s.trigger)
		s.world = nil
	}
	s.trigger = physics.Trigger{}
	s.scratch.release(s.gesture)
}

func (s *Selector) updateHover(ctx *Context) {
	var next Selectable
	ray := BuildRay(ctx.Camera, ctx.Input.Pointer)
	if hit, ok := ctx.World.Raycast(ray, s.far(ctx.Camera), s.settings.UnitMask); ok {
		next, _ = selectableOf(hit.Body)
	}
	if next == s.hover {
		return
	}
	if s.hover != nil {
		s.hover.HoverExit()
	}
	if next != nil {
		next.HoverEnter()
	}
	s.hover = next
}

func (s *Selector) hideOverlay() {
	if s.overlay != nil {
		s.overlay.Hide()
	}
}

func (s *Selector) setCursor(visible bool) {
	if s.cursor != nil {
		s.cursor.SetVisible(visible)
	}
}

// selectableOf returns the Selectable owning b. Bodies without an owner are world geometry.
func selectableOf(b *physics.Body) (Selectable, bool) {
	if b == nil || b.Owner == nil {
		return nil, false
	}
	sel, ok := b.Owner.(Selectable)
	return sel, ok
}
