package viewer

import (
	"errors"
	"fmt"
	"log/slog"

	"placer/internal/config"
	"placer/internal/editor"
	"placer/internal/engine"
	"placer/internal/physics"
	"placer/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/lo"
)

// tintCycle is the order ActionCycleTint walks through.
var tintCycle = []engine.Tint{
	engine.UntintedTint(),
	engine.ColorTint(rl.Red),
	engine.ColorTint(rl.Blue),
	engine.ColorTint(rl.Green),
	engine.ColorTint(rl.Orange),
	engine.TransparentTint(),
}

// ErrNoPath is returned by Save when the session has nowhere to write.
var ErrNoPath = errors.New("no project path")

// Session wires one scene and its controller to editor commands. It holds no
// raylib window state so it can be driven headless.
type Session struct {
	scene *engine.Scene
	ctrl  *editor.Controller
	log   *slog.Logger
	path  string

	states []engine.PartState
	mode   editor.Mode
	status string

	unsubscribe []func()
}

func NewSession(scene *engine.Scene, ctrl *editor.Controller, path string, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{scene: scene, ctrl: ctrl, log: log, path: path, states: scene.States()}
	s.unsubscribe = append(s.unsubscribe,
		scene.Changed.AddListener(func(states []engine.PartState) { s.states = states }),
		ctrl.ModeChanged.AddListener(func(mc editor.ModeChange) { s.mode = mc.Mode }),
	)
	return s
}

// Close detaches the session from the scene and controller events.
func (s *Session) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}

func (s *Session) States() []engine.PartState { return s.states }
func (s *Session) Mode() editor.Mode          { return s.mode }
func (s *Session) Status() string             { return s.status }

// ApplyConfig pushes reloaded settings into the scene and controller.
func (s *Session) ApplyConfig(cfg config.Config) {
	s.scene.SetSettings(cfg.SceneSettings())
	s.ctrl.SetSettings(cfg.EditorSettings())
	s.status = "config reloaded"
}

// Apply runs one command. anchor is where a paste lands; p is the current
// pointer sample for commands that start a transform mode.
func (s *Session) Apply(a Action, anchor rl.Vector3, p editor.Pointer) bool {
	ids := s.scene.SelectedIDs()
	switch a {
	case ActionCopy:
		n := s.scene.Copy(ids)
		s.status = fmt.Sprintf("copied %d", n)
		return n > 0
	case ActionCut:
		s.ctrl.Stop()
		n := s.scene.Cut(ids)
		s.status = fmt.Sprintf("cut %d", n)
		return n > 0
	case ActionPaste:
		s.ctrl.Stop()
		pasted := s.scene.Paste(anchor)
		s.status = fmt.Sprintf("pasted %d", len(pasted))
		return len(pasted) > 0
	case ActionDelete:
		s.ctrl.Stop()
		n := s.scene.Delete(ids)
		s.status = fmt.Sprintf("deleted %d", n)
		return n > 0
	case ActionUndo:
		s.ctrl.Stop()
		return s.scene.Undo()
	case ActionRedo:
		s.ctrl.Stop()
		return s.scene.Redo()
	case ActionSelectAll:
		s.scene.SelectAll()
		return true
	case ActionEscape:
		if s.ctrl.Mode() != editor.Idle {
			s.ctrl.Cancel()
			return true
		}
		if s.scene.Selection().IsEmpty() {
			return false
		}
		s.scene.ClearSelection()
		return true
	case ActionSave:
		if err := s.Save(); err != nil {
			s.status = err.Error()
			s.log.Error("save failed", "path", s.path, "err", err)
			return false
		}
		s.status = "saved"
		return true
	case ActionCycleTint:
		return s.cycleTint(ids)
	case ActionMove:
		return s.ctrl.Start(editor.Moving, p)
	case ActionHeight:
		return s.ctrl.Start(editor.AdjustingHeight, p)
	case ActionRotateX:
		return s.ctrl.Start(editor.RotatingX, p)
	case ActionRotateY:
		return s.ctrl.Start(editor.RotatingY, p)
	case ActionRotateZ:
		return s.ctrl.Start(editor.RotatingZ, p)
	}
	return false
}

func (s *Session) cycleTint(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	first, ok := s.scene.Part(ids[0])
	if !ok {
		return false
	}
	_, i, _ := lo.FindIndexOf(tintCycle, func(t engine.Tint) bool { return t == first.Tint })
	next := tintCycle[(i+1)%len(tintCycle)]

	s.scene.PushHistory()
	for _, id := range ids {
		s.scene.SetTint(id, next)
	}
	s.status = "tint " + next.Mode.String()
	return true
}

// Save writes the project file and clears the unsaved flag.
func (s *Session) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	f := world.FromParts(s.scene.ProjectID(), s.scene.Parts())
	if err := world.Save(s.path, f); err != nil {
		return err
	}
	s.scene.MarkSaved()
	return nil
}

// Pick returns the nearest part hit by ray.
func (s *Session) Pick(ray rl.Ray) (string, bool) {
	best, bestDist := "", float32(0)
	for _, st := range s.states {
		d, ok := physics.RayBoxDistance(ray, st.Bounds)
		if !ok {
			continue
		}
		if best == "" || d < bestDist {
			best, bestDist = st.ID, d
		}
	}
	return best, best != ""
}

// Click updates the selection from a pick. additive toggles the hit part in
// and out of the current selection; a miss without additive clears it.
func (s *Session) Click(ray rl.Ray, additive bool) {
	id, hit := s.Pick(ray)
	if !additive {
		if hit {
			s.scene.Select(engine.SingleSelection(id))
		} else {
			s.scene.ClearSelection()
		}
		return
	}
	if !hit {
		return
	}
	ids := s.scene.SelectedIDs()
	if lo.Contains(ids, id) {
		ids = lo.Without(ids, id)
	} else {
		ids = append(ids, id)
	}
	s.scene.Select(engine.MultipleSelection(ids...))
}

// Drag forwards a pointer sample to the active mode.
func (s *Session) Drag(p editor.Pointer) bool {
	return s.ctrl.Move(p)
}

// Release ends the active mode.
func (s *Session) Release() {
	s.ctrl.Stop()
}
