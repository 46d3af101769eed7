// Package viewer is the interactive host: a raylib window that draws the
// scene, maps keys and the mouse onto scene and controller calls, and applies
// config reloads between frames.
package viewer

import (
	"log/slog"

	"placer/internal/config"
	"placer/internal/editor"
	"placer/internal/engine"
	"placer/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Options struct {
	Title       string
	Width       int32
	Height      int32
	ProjectPath string
	// Reloads delivers config changes; it is drained on the render loop
	// once per frame.
	Reloads <-chan config.Config
	Logger  *slog.Logger
}

// Run opens the window and blocks until it is closed.
func Run(scene *engine.Scene, ctrl *editor.Controller, opts Options) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Width == 0 {
		opts.Width, opts.Height = 1280, 800
	}
	if opts.Title == "" {
		opts.Title = "placer"
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	initRayguiStyle()

	sess := NewSession(scene, ctrl, opts.ProjectPath, log)
	defer sess.Close()

	overlapping := map[string]bool{}
	refreshOverlaps := func([]engine.PartState) {
		clear(overlapping)
		for _, pair := range scene.OverlappingPairs() {
			overlapping[pair[0]] = true
			overlapping[pair[1]] = true
		}
	}
	refreshOverlaps(nil)
	defer scene.Changed.AddListener(refreshOverlaps)()

	cam := NewEditorCamera()
	bindings := DefaultBindings()
	kb := raylibKeyboard{}

	for !rl.WindowShouldClose() {
		drainReloads(opts.Reloads, sess)

		dt := rl.GetFrameTime()
		cam.update(dt)
		camera := cam.Camera3D()
		mouse := rl.GetMousePosition()
		p := editor.Pointer{X: mouse.X, Y: mouse.Y, Ray: rl.GetScreenToWorldRay(mouse, camera)}

		if !rl.IsMouseButtonDown(rl.MouseRightButton) {
			if a := Match(bindings, kb); a != ActionNone {
				sess.Apply(a, pasteAnchor(p.Ray), p)
			}
		}

		overToolbar := mouse.Y < toolbarHeight
		switch {
		case rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overToolbar:
			if ctrl.Mode() != editor.Idle {
				sess.Release()
				break
			}
			additive := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
			sess.Click(p.Ray, additive)
			// pressing on a part starts a move right away
			if _, hit := sess.Pick(p.Ray); hit && !additive {
				sess.Apply(ActionMove, rl.Vector3{}, p)
			}
		case rl.IsMouseButtonReleased(rl.MouseLeftButton) && ctrl.Mode() == editor.Moving:
			sess.Release()
		case ctrl.Mode() != editor.Idle:
			sess.Drag(p)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 24, 30, 255))

		w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		frustum := NewFrustum(camera, float32(w)/float32(max(h, 1)))

		rl.BeginMode3D(camera)
		drawGrid(scene.Settings().GridHalfSize)
		selected := map[string]bool{}
		for _, id := range scene.SelectedIDs() {
			selected[id] = true
		}
		for _, st := range sess.States() {
			if !frustum.ContainsBox(st.Bounds) {
				continue
			}
			drawPart(st, selected[st.ID], overlapping[st.ID])
		}
		rl.EndMode3D()

		if a := drawToolbar(w, sess.Mode()); a != ActionNone {
			sess.Apply(a, pasteAnchor(p.Ray), p)
		}
		drawStatus(w, h, sess, scene.HasUnsavedChanges())
		rl.EndDrawing()
	}
}

func drainReloads(ch <-chan config.Config, sess *Session) {
	if ch == nil {
		return
	}
	for {
		select {
		case cfg := <-ch:
			sess.ApplyConfig(cfg)
		default:
			return
		}
	}
}

// pasteAnchor is the ground point under the cursor, or the origin when the
// cursor points at the sky.
func pasteAnchor(ray rl.Ray) rl.Vector3 {
	if hit, ok := physics.RayGroundIntersect(ray, 0); ok {
		return hit
	}
	return rl.Vector3{}
}
