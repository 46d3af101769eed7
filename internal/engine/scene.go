package engine

import (
	"log/slog"
	"sort"
	"time"

	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

// Settings are the scene-level knobs.
type Settings struct {
	// AllowOverlap disables the overlap gate for the session.
	AllowOverlap bool
	// GridHalfSize bounds the workspace on X and Z; zero or less disables
	// containment.
	GridHalfSize float32
	HistoryLimit int
	OverlapTest  physics.OverlapTest
	Epsilon      float32
}

func DefaultSettings() Settings {
	return Settings{
		GridHalfSize: 10,
		HistoryLimit: DefaultHistoryLimit,
		OverlapTest:  physics.OverlapAABB,
		Epsilon:      physics.DefaultEpsilon,
	}
}

type Option func(*Scene)

func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.log = l
		}
	}
}

func WithSettings(st Settings) Option {
	return func(s *Scene) { s.SetSettings(st) }
}

// Update is one member of an atomic transform write.
type Update struct {
	ID       string
	Position rl.Vector3
	Rotation rl.Vector3
}

// Scene owns the placed parts of one project. Every mutation goes through it
// so the overlap gate, history and the unsaved flag stay consistent. A Scene
// is not safe for concurrent use.
type Scene struct {
	log      *slog.Logger
	settings Settings
	now      func() time.Time

	projectID string
	loaded    bool
	parts     []Part
	index     *physics.Index

	history   *History
	clipboard Clipboard
	selection Selection

	saved   []byte
	dirty   bool
	changes []ChangeRecord

	// gesture maps a part id to the ids it overlapped when the current
	// gesture began; nil outside a gesture.
	gesture map[string]map[string]bool

	// Changed fires after every change with the state of all parts.
	Changed Event[[]PartState]
}

func NewScene(opts ...Option) *Scene {
	s := &Scene{
		log:      slog.Default(),
		settings: DefaultSettings(),
		now:      time.Now,
		index:    physics.NewIndex(),
		history:  NewHistory(DefaultHistoryLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.saved = serialize(nil)
	return s
}

func (s *Scene) Settings() Settings { return s.settings }

// SetSettings applies new knobs. Existing parts are not re-clamped.
func (s *Scene) SetSettings(st Settings) {
	if st.Epsilon <= 0 {
		st.Epsilon = physics.DefaultEpsilon
	}
	if st.HistoryLimit <= 0 {
		st.HistoryLimit = DefaultHistoryLimit
	}
	s.settings = st
	s.history.SetLimit(st.HistoryLimit)
}

// SetProjectContext loads parts as the new baseline and clears history,
// clipboard, selection and pending changes.
func (s *Scene) SetProjectContext(projectID string, parts []Part) {
	s.projectID = projectID
	s.loaded = true
	s.parts = make([]Part, 0, len(parts))
	for _, p := range parts {
		p = p.Clone()
		if p.ID == "" || s.indexOf(p.ID) >= 0 {
			p.ID = NewPart(p.Asset, p.Position, p.Rotation).ID
		}
		p.Rotation = physics.NormalizeRotation(p.Rotation)
		s.parts = append(s.parts, p)
	}
	s.rebuildIndex()
	s.history.Reset()
	s.clipboard = Clipboard{}
	s.selection = NoSelection()
	s.gesture = nil
	s.changes = nil
	s.saved = serialize(s.parts)
	s.dirty = false
	s.log.Info("project loaded", "project", projectID, "parts", len(s.parts))
	s.emit()
}

func (s *Scene) ProjectID() string { return s.projectID }
func (s *Scene) Loaded() bool      { return s.loaded }
func (s *Scene) Len() int          { return len(s.parts) }

// Parts returns deep copies in scene order.
func (s *Scene) Parts() []Part {
	out := make([]Part, len(s.parts))
	for i, p := range s.parts {
		out[i] = p.Clone()
	}
	return out
}

func (s *Scene) Part(id string) (Part, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Part{}, false
	}
	return s.parts[i].Clone(), true
}

// States is the render view of every part.
func (s *Scene) States() []PartState {
	return lo.Map(s.parts, func(p Part, _ int) PartState { return p.State() })
}

// AddPart inserts p (minting an id if it has none or a taken one), pushes
// history and returns the id. The part is kept inside the grid and above the
// ground but is not overlap-gated.
func (s *Scene) AddPart(p Part) string {
	p = p.Clone()
	if p.ID == "" || s.indexOf(p.ID) >= 0 {
		p.ID = NewPart(p.Asset, p.Position, p.Rotation).ID
	}
	s.PushHistory()
	p.Rotation = physics.NormalizeRotation(p.Rotation)
	p.Position = s.settle(p.Position, p)
	s.parts = append(s.parts, p)
	s.index.Insert(p.ID, p.Bounds())
	s.commit(ChangeAdd, []string{p.ID})
	return p.ID
}

// ReportDimensions stores geometry for id once its asset has loaded and lifts
// the part if the new footprint dips below the ground.
func (s *Scene) ReportDimensions(id string, dims *physics.Dimensions) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	p := s.parts[i]
	p.Dimensions = dims.Clone()
	lifted := physics.RestOnGround(p.Position, p.Dimensions, p.Rotation)
	moved := lifted != p.Position
	p.Position = lifted
	s.parts[i] = p
	s.index.Insert(id, p.Bounds())
	if moved {
		s.commit(ChangeGround, []string{id})
		return true
	}
	s.emit()
	return true
}

// SetTint replaces the tint state of id. The caller pushes history.
func (s *Scene) SetTint(id string, tint Tint) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.parts[i].Tint = tint.normalized()
	s.commit(ChangeTint, []string{id})
	return true
}

func (s *Scene) UpdatePosition(id string, position rl.Vector3) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	return s.UpdateTransforms([]Update{{ID: id, Position: position, Rotation: s.parts[i].Rotation}})
}

func (s *Scene) UpdateRotation(id string, rotation rl.Vector3) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	return s.UpdateTransforms([]Update{{ID: id, Position: s.parts[i].Position, Rotation: rotation}})
}

// UpdateTransforms writes all updates or none. Unknown ids are skipped.
// Rotations are normalized, positions are kept inside the grid and above the
// ground, and the write is rejected if any touched part would start
// overlapping a part it did not overlap at the baseline (gesture start, or
// the pre-write state outside a gesture).
func (s *Scene) UpdateTransforms(updates []Update) bool {
	touched := make(map[string]Part, len(updates))
	var ids []string
	for _, u := range updates {
		i := s.indexOf(u.ID)
		if i < 0 {
			continue
		}
		cur := s.parts[i]
		next := cur
		next.Rotation = physics.NormalizeRotation(u.Rotation)
		next.Dimensions = dimsForRotation(cur.Dimensions, cur.Rotation, next.Rotation)
		next.Position = s.settle(u.Position, next)
		if _, dup := touched[u.ID]; !dup {
			ids = append(ids, u.ID)
		}
		touched[u.ID] = next
	}
	if len(ids) == 0 {
		return false
	}

	if !s.settings.AllowOverlap {
		if a, b, found := s.firstNewOverlap(ids, touched); found {
			s.log.Debug("transform rejected", "part", a, "overlaps", b)
			return false
		}
	}

	changed := false
	for _, id := range ids {
		i := s.indexOf(id)
		next := touched[id]
		if next.Position != s.parts[i].Position || next.Rotation != s.parts[i].Rotation {
			changed = true
		}
		s.parts[i] = next
		s.index.Insert(id, next.Bounds())
	}
	if changed {
		s.commit(ChangeTransform, ids)
	}
	return true
}

// settle keeps position inside the grid and the footprint above y=0.
func (s *Scene) settle(position rl.Vector3, p Part) rl.Vector3 {
	if s.settings.GridHalfSize > 0 {
		position = physics.ClampPositionToGrid(position, p.Dimensions, p.Rotation, s.settings.GridHalfSize)
	}
	return physics.RestOnGround(position, p.Dimensions, p.Rotation)
}

func (s *Scene) firstNewOverlap(ids []string, touched map[string]Part) (string, string, bool) {
	fps := make(map[string]physics.Footprint, len(ids))
	for _, id := range ids {
		fps[id] = touched[id].footprint()
	}
	for _, id := range ids {
		fp := fps[id]
		base := s.baseline(id)
		candidates := lo.Uniq(append(s.index.Query(fp.Box, 0), ids...))
		for _, c := range candidates {
			if c == id || base[c] {
				continue
			}
			other, ok := fps[c]
			if !ok {
				j := s.indexOf(c)
				if j < 0 {
					continue
				}
				other = s.parts[j].footprint()
			}
			if s.settings.OverlapTest.Overlap(fp, other, s.settings.Epsilon) {
				return id, c, true
			}
		}
	}
	return "", "", false
}

func (s *Scene) baseline(id string) map[string]bool {
	if b, ok := s.gesture[id]; ok {
		return b
	}
	return s.overlapsOf(id)
}

// overlapsOf returns the ids id currently overlaps.
func (s *Scene) overlapsOf(id string) map[string]bool {
	out := make(map[string]bool)
	i := s.indexOf(id)
	if i < 0 {
		return out
	}
	fp := s.parts[i].footprint()
	for _, c := range s.index.Query(fp.Box, 0) {
		if c == id {
			continue
		}
		j := s.indexOf(c)
		if j < 0 {
			continue
		}
		if s.settings.OverlapTest.Overlap(fp, s.parts[j].footprint(), s.settings.Epsilon) {
			out[c] = true
		}
	}
	return out
}

// BeginGesture captures the overlap baseline for ids. Until EndGesture, writes
// to these parts are judged against the state at this point rather than the
// previous frame.
func (s *Scene) BeginGesture(ids []string) {
	s.gesture = make(map[string]map[string]bool, len(ids))
	for _, id := range ids {
		if s.indexOf(id) >= 0 {
			s.gesture[id] = s.overlapsOf(id)
		}
	}
}

func (s *Scene) EndGesture() {
	s.gesture = nil
}

func (s *Scene) InGesture() bool {
	return s.gesture != nil
}

// OverlappingPairs lists every overlapping pair once, lower id first.
func (s *Scene) OverlappingPairs() [][2]string {
	var pairs [][2]string
	for _, p := range s.parts {
		for c := range s.overlapsOf(p.ID) {
			if p.ID < c {
				pairs = append(pairs, [2]string{p.ID, c})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// Revalidate lifts every part whose footprint dips below the ground and
// returns the ids it moved.
func (s *Scene) Revalidate() []string {
	var lifted []string
	for i, p := range s.parts {
		pos := physics.RestOnGround(p.Position, p.Dimensions, p.Rotation)
		if pos == p.Position {
			continue
		}
		s.parts[i].Position = pos
		s.index.Insert(p.ID, s.parts[i].Bounds())
		lifted = append(lifted, p.ID)
	}
	if len(lifted) > 0 {
		s.commit(ChangeGround, lifted)
	}
	return lifted
}

// PushHistory snapshots the scene onto the undo stack and clears redo. Call
// it once before a group of related mutations.
func (s *Scene) PushHistory() {
	s.history.Push(s.parts)
}

func (s *Scene) CanUndo() bool { return s.loaded && s.history.CanUndo() }
func (s *Scene) CanRedo() bool { return s.loaded && s.history.CanRedo() }

// HistoryDepth returns the sizes of the undo and redo stacks.
func (s *Scene) HistoryDepth() (past, future int) { return s.history.Depth() }

func (s *Scene) Undo() bool {
	if !s.loaded {
		return false
	}
	prev, ok := s.history.Undo(s.parts)
	if !ok {
		return false
	}
	s.replace(prev, ChangeUndo)
	return true
}

func (s *Scene) Redo() bool {
	if !s.loaded {
		return false
	}
	next, ok := s.history.Redo(s.parts)
	if !ok {
		return false
	}
	s.replace(next, ChangeRedo)
	return true
}

func (s *Scene) replace(parts []Part, kind ChangeKind) {
	s.parts = parts
	s.gesture = nil
	s.rebuildIndex()
	s.commit(kind, lo.Map(parts, func(p Part, _ int) string { return p.ID }))
}

// Copy puts the named parts on the clipboard and returns how many were
// copied. With no existing ids the clipboard is left alone.
func (s *Scene) Copy(ids []string) int {
	return s.toClipboard(ids, ClipCopy)
}

// Cut copies then removes the named parts, pushing history first.
func (s *Scene) Cut(ids []string) int {
	n := s.toClipboard(ids, ClipCut)
	if n == 0 {
		return 0
	}
	s.PushHistory()
	removed := s.remove(ids)
	s.commit(ChangeCut, removed)
	return n
}

func (s *Scene) toClipboard(ids []string, action ClipboardAction) int {
	var picked []Part
	for _, id := range lo.Uniq(ids) {
		if i := s.indexOf(id); i >= 0 {
			picked = append(picked, s.parts[i].Clone())
		}
	}
	if len(picked) == 0 {
		return 0
	}
	s.clipboard = Clipboard{Action: action, Parts: picked}
	return len(picked)
}

// Clipboard returns a copy of the clipboard.
func (s *Scene) Clipboard() Clipboard {
	c := Clipboard{Action: s.clipboard.Action}
	for _, p := range s.clipboard.Parts {
		c.Parts = append(c.Parts, p.Clone())
	}
	return c
}

// Paste inserts clones of the clipboard around anchor with fresh ids,
// preserving their relative layout, selects them and returns their ids.
// An empty clipboard is a no-op.
func (s *Scene) Paste(anchor rl.Vector3) []string {
	if s.clipboard.Empty() {
		return nil
	}
	s.PushHistory()
	clones := liftGroup(s.clipboard.Arrange(anchor))
	ids := make([]string, 0, len(clones))
	for _, p := range clones {
		s.parts = append(s.parts, p)
		s.index.Insert(p.ID, p.Bounds())
		ids = append(ids, p.ID)
	}
	s.selection = MultipleSelection(ids...)
	s.commit(ChangePaste, ids)
	return ids
}

// liftGroup raises the whole group by the deepest ground penetration among
// its members so the layout survives and nothing ends up below y=0.
func liftGroup(parts []Part) []Part {
	var lift float32
	for _, p := range parts {
		rested := physics.RestOnGround(p.Position, p.Dimensions, p.Rotation)
		if d := rested.Y - p.Position.Y; d > lift {
			lift = d
		}
	}
	if lift == 0 {
		return parts
	}
	for i := range parts {
		parts[i].Position.Y += lift
	}
	return parts
}

// Snapshot returns a deep copy of the parts for a later PushSnapshot.
func (s *Scene) Snapshot() []Part {
	return snapshot(s.parts)
}

// PushSnapshot records parts, taken earlier with Snapshot, as the state to
// undo back to and clears redo.
func (s *Scene) PushSnapshot(parts []Part) {
	s.history.Push(parts)
}

// Delete removes the named parts after pushing history and returns how many
// were removed.
func (s *Scene) Delete(ids []string) int {
	if !lo.SomeBy(ids, func(id string) bool { return s.indexOf(id) >= 0 }) {
		return 0
	}
	s.PushHistory()
	removed := s.remove(ids)
	s.commit(ChangeDelete, removed)
	return len(removed)
}

func (s *Scene) remove(ids []string) []string {
	var removed []string
	s.parts = lo.Filter(s.parts, func(p Part, _ int) bool {
		if lo.Contains(ids, p.ID) {
			removed = append(removed, p.ID)
			s.index.Remove(p.ID)
			return false
		}
		return true
	})
	s.selection = s.selection.Without(removed)
	for _, id := range removed {
		delete(s.gesture, id)
	}
	return removed
}

func (s *Scene) Select(sel Selection) { s.selection = sel }
func (s *Scene) SelectAll()           { s.selection = AllSelection() }
func (s *Scene) ClearSelection()      { s.selection = NoSelection() }
func (s *Scene) Selection() Selection { return s.selection }

// SelectedIDs resolves the selection against the live parts.
func (s *Scene) SelectedIDs() []string {
	return s.selection.Resolve(s.parts)
}

// Resolve resolves any selection against the live parts.
func (s *Scene) Resolve(sel Selection) []string {
	return sel.Resolve(s.parts)
}

func (s *Scene) HasUnsavedChanges() bool { return s.dirty }

// MarkSaved makes the current state the saved baseline.
func (s *Scene) MarkSaved() {
	s.saved = serialize(s.parts)
	s.dirty = false
	s.changes = nil
}

// PendingChanges returns the change records since the last save.
func (s *Scene) PendingChanges() []ChangeRecord {
	return append([]ChangeRecord(nil), s.changes...)
}

// Serialized is the normalized form used for change detection.
func (s *Scene) Serialized() []byte {
	return serialize(s.parts)
}

func (s *Scene) commit(kind ChangeKind, ids []string) {
	s.changes = append(s.changes, ChangeRecord{Kind: kind, PartIDs: ids, At: s.now()})
	s.dirty = !sameSerial(serialize(s.parts), s.saved)
	s.emit()
}

func (s *Scene) emit() {
	if s.Changed.ListenerCount() == 0 {
		return
	}
	s.Changed.Invoke(s.States())
}

func (s *Scene) indexOf(id string) int {
	for i := range s.parts {
		if s.parts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) rebuildIndex() {
	s.index = physics.NewIndex()
	for _, p := range s.parts {
		s.index.Insert(p.ID, p.Bounds())
	}
}
