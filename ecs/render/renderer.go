// Package render draws the battle stage world with ebiten.
package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/battlestage/ecs"
	"github.com/milk9111/battlestage/ecs/component"
	"github.com/milk9111/battlestage/ecs/system"
	"github.com/milk9111/battlestage/prefabs"
	"github.com/milk9111/battlestage/resource"
)

const (
	hpBarWidth  = 48
	hpBarHeight = 5
	vfxFrameW   = 32
	vfxFrames   = 6
)

// Renderer draws one world per frame.
type Renderer struct {
	Background *resource.Background

	HPBarColor   color.Color
	BossBarColor color.Color
	TextColor    color.Color

	face      text.Face
	smallFace text.Face
}

func NewRenderer(hud prefabs.HUDSpec) *Renderer {
	return &Renderer{
		HPBarColor:   hud.HPBarColor.Or(color.RGBA{220, 60, 60, 255}),
		BossBarColor: hud.BossBarColor.Or(color.RGBA{160, 40, 240, 255}),
		TextColor:    hud.TextColor.Or(color.White),
		face:         Face(14),
		smallFace:    Face(11),
	}
}

type drawable struct {
	e     ecs.Entity
	rank  int
	order int
	y     float64
}

// camera returns the active camera position and zoom.
func camera(w *ecs.World) (x, y, zoom float64) {
	zoom = 1
	if e, ok := system.ActiveCamera(w); ok {
		c, _ := ecs.Get(w, e, component.CameraComponent.Kind())
		x, y = c.X, c.Y
		if c.Zoom > 0 {
			zoom = c.Zoom
		}
	}
	return x, y, zoom
}

// Draw renders the background, every visible animated entity and the HUD.
func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	camX, camY, zoom := camera(w)
	toScreen := func(x, y float64) (float64, float64) {
		return (x-camX)*zoom + float64(sw)/2, (y-camY)*zoom + float64(sh)/2
	}

	r.drawBackground(screen)

	var items []drawable
	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Animator, tr *component.Transform) {
		d := drawable{e: e, rank: component.LayerRank(component.LayerCharacter), y: tr.Y}
		if sl, ok := ecs.Get(w, e, component.SortingLayerComponent.Kind()); ok {
			d.rank = component.LayerRank(sl.Name)
			d.order = sl.Order
		}
		items = append(items, d)
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].rank != items[j].rank {
			return items[i].rank < items[j].rank
		}
		if items[i].order != items[j].order {
			return items[i].order < items[j].order
		}
		return items[i].y < items[j].y
	})

	for _, d := range items {
		r.drawEntity(screen, w, d.e, zoom, toScreen)
	}

	ecs.ForEach(w, component.VFXComponent.Kind(), func(_ ecs.Entity, v *component.VFX) {
		r.drawVFX(screen, v, zoom, toScreen)
	})
	ecs.ForEach(w, component.DamageTextComponent.Kind(), func(_ ecs.Entity, d *component.DamageText) {
		x, y := toScreen(d.X, d.Y)
		label := strconv.Itoa(d.Value)
		if d.Value > 0 {
			label = "+" + label
		}
		clr := r.TextColor
		if d.Critical {
			clr = color.RGBA{255, 210, 60, 255}
		}
		r.drawText(screen, label, r.face, x, y, clr, true)
	})

	r.drawBossHUD(screen, w, sw)
}

func (r *Renderer) drawBackground(screen *ebiten.Image) {
	if r.Background == nil {
		screen.Fill(color.RGBA{24, 28, 40, 255})
		return
	}
	img, err := LoadImage(r.Background.Image)
	if err != nil {
		screen.Fill(color.RGBA{24, 28, 40, 255})
		return
	}
	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(iw), float64(sh)/float64(ih))
	screen.DrawImage(img, op)
}

func (r *Renderer) drawEntity(screen *ebiten.Image, w *ecs.World, e ecs.Entity, zoom float64, toScreen func(x, y float64) (float64, float64)) {
	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	alpha := 1.0
	if vis, ok := ecs.Get(w, e, component.VisibilityComponent.Kind()); ok {
		if vis.Hidden {
			return
		}
		alpha = vis.Alpha
	}

	x, y := toScreen(tr.X, tr.Y)
	clip, ok := anim.Clip()
	if ok && anim.Target != nil {
		scale := anim.Target.Scale * zoom
		if sheet, err := LoadImage(anim.Target.Sheet); err == nil {
			sx := (clip.ColStart + anim.Frame) * clip.FrameW
			sy := clip.Row * clip.FrameH
			frame := sheet.SubImage(image.Rect(sx, sy, sx+clip.FrameW, sy+clip.FrameH)).(*ebiten.Image)

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(clip.FrameW)/2, -float64(clip.FrameH))
			op.GeoM.Scale(scale*tr.ScaleX, scale*tr.ScaleY)
			op.GeoM.Translate(x, y)
			op.ColorScale.ScaleAlpha(float32(alpha))
			screen.DrawImage(frame, op)
		} else {
			fw, fh := float64(clip.FrameW)*scale, float64(clip.FrameH)*scale
			vector.DrawFilledRect(screen, float32(x-fw/2), float32(y-fh), float32(fw), float32(fh), color.RGBA{200, 0, 200, uint8(200 * alpha)}, false)
		}
	}

	top := y - r.visualHeight(anim)*zoom
	if bar, ok := ecs.Get(w, e, component.HPBarComponent.Kind()); ok && !bar.Hidden && bar.Max > 0 {
		r.drawBar(screen, x-hpBarWidth/2, top-10, hpBarWidth, hpBarHeight, float64(bar.Current)/float64(bar.Max), r.HPBarColor)
	}
	if bubble, ok := ecs.Get(w, e, component.SpeechBubbleComponent.Kind()); ok {
		r.drawBubble(screen, bubble.Text, x, top-28)
	}
}

func (r *Renderer) visualHeight(anim *component.Animator) float64 {
	if anim == nil || anim.Target == nil {
		return 0
	}
	if clip, ok := anim.Clip(); ok {
		return float64(clip.FrameH) * anim.Target.Scale
	}
	return anim.Target.Bounds.Height * anim.Target.Scale
}

func (r *Renderer) drawVFX(screen *ebiten.Image, v *component.VFX, zoom float64, toScreen func(x, y float64) (float64, float64)) {
	x, y := toScreen(v.X, v.Y)
	img, err := LoadImage(fmt.Sprintf("vfx/%s.png", v.Name))
	if err != nil {
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(8*zoom), color.RGBA{255, 240, 160, 180}, true)
		return
	}
	frame := (system.DefaultVFXTicks - v.TTL) * vfxFrames / system.DefaultVFXTicks
	if frame < 0 {
		frame = 0
	}
	if frame >= vfxFrames {
		frame = vfxFrames - 1
	}
	sub := img.SubImage(image.Rect(frame*vfxFrameW, 0, (frame+1)*vfxFrameW, img.Bounds().Dy())).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-vfxFrameW/2, -float64(img.Bounds().Dy())/2)
	op.GeoM.Scale(2*zoom, 2*zoom)
	op.GeoM.Translate(x, y)
	screen.DrawImage(sub, op)
}

func (r *Renderer) drawBar(screen *ebiten.Image, x, y, width, height, pct float64, fill color.Color) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{40, 40, 40, 220}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*pct), float32(height), fill, false)
}

func (r *Renderer) drawBubble(screen *ebiten.Image, msg string, x, y float64) {
	if msg == "" || r.smallFace == nil {
		return
	}
	tw, th := text.Measure(msg, r.smallFace, 0)
	vector.DrawFilledRect(screen, float32(x-tw/2-6), float32(y-th-4), float32(tw+12), float32(th+8), color.RGBA{250, 250, 240, 230}, false)
	r.drawText(screen, msg, r.smallFace, x, y-th, color.RGBA{30, 30, 30, 255}, true)
}

func (r *Renderer) drawBossHUD(screen *ebiten.Image, w *ecs.World, sw int) {
	e, ok := ecs.First(w, component.BossStatusComponent.Kind())
	if !ok {
		return
	}
	status, _ := ecs.Get(w, e, component.BossStatusComponent.Kind())
	if status.Max <= 0 {
		return
	}
	width := float64(sw) * 0.5
	x := (float64(sw) - width) / 2
	r.drawBar(screen, x, 16, width, 10, float64(status.Current)/float64(status.Max), r.BossBarColor)
	label := fmt.Sprintf("%d / %d", status.Current, status.Max)
	for _, b := range status.Buffs {
		label += fmt.Sprintf("  %s(%d)", b.Name, b.RemainedDuration)
	}
	r.drawText(screen, label, r.smallFace, float64(sw)/2, 30, r.TextColor, true)
}

func (r *Renderer) drawText(screen *ebiten.Image, msg string, face text.Face, x, y float64, clr color.Color, centered bool) {
	if face == nil || msg == "" {
		return
	}
	op := &text.DrawOptions{}
	if centered {
		op.PrimaryAlign = text.AlignCenter
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, face, op)
}

// ScreenToWorld maps a screen position to world coordinates through the
// active camera.
func ScreenToWorld(w *ecs.World, sx, sy float64, screenW, screenH int) (float64, float64) {
	camX, camY, zoom := camera(w)
	return (sx-float64(screenW)/2)/zoom + camX, (sy-float64(screenH)/2)/zoom + camY
}
