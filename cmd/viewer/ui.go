package main

import (
	"bytes"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/battlestage/viewer"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

type viewerUI struct {
	UI *ebitenui.UI

	viewer    *viewer.Viewer
	face      text.Face
	menus     *widget.Container
	buttonBox *widget.Container
	idInput   *widget.TextInput
	bgInput   *widget.TextInput
	warning   *widget.Text
	recent    *widget.Text
	buttons   []*widget.Button
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func loadFace() text.Face {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("viewer: load font: %v", err)
		return text.NewGoXFace(basicfont.Face7x13)
	}
	return &text.GoTextFace{Source: s, Size: 14}
}

func newViewerUI(v *viewer.Viewer) *viewerUI {
	u := &viewerUI{viewer: v, face: loadFace()}

	buttonImage := &widget.ButtonImage{
		Idle:    solidNineSlice(color.RGBA{0x33, 0x33, 0x33, 0xff}),
		Hover:   solidNineSlice(color.RGBA{0x44, 0x44, 0x44, 0xff}),
		Pressed: solidNineSlice(color.RGBA{0x22, 0x22, 0x22, 0xff}),
	}
	buttonText := &widget.ButtonTextColor{Idle: color.White}
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	u.menus = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{0, 0, 0, 180})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 200),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	u.idInput = u.newInput(func(s string) { v.LoadResource(s) })
	u.bgInput = u.newInput(func(s string) { v.LoadBackground(s) })

	u.menus.AddChild(widget.NewLabel(widget.LabelOpts.Text("Resource ID", &u.face, labelColor)))
	u.menus.AddChild(u.idInput)
	u.menus.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text("Load", &u.face, buttonText),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			v.LoadResource(u.idInput.GetText())
		}),
	))
	u.menus.AddChild(widget.NewLabel(widget.LabelOpts.Text("Background", &u.face, labelColor)))
	u.menus.AddChild(u.bgInput)
	u.menus.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text("Load Background", &u.face, buttonText),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			v.LoadBackground(u.bgInput.GetText())
		}),
	))

	u.recent = widget.NewText(widget.TextOpts.Text("", &u.face, color.Gray{Y: 180}))
	u.menus.AddChild(u.recent)

	u.warning = widget.NewText(widget.TextOpts.Text("", &u.face, color.RGBA{0xff, 0xc0, 0x40, 0xff}))
	u.warning.GetWidget().Visibility = widget.Visibility_Hide
	u.menus.AddChild(u.warning)

	u.buttonBox = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Spacing(4, 4),
		)),
	)
	u.menus.AddChild(u.buttonBox)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(u.menus)
	u.UI = &ebitenui.UI{Container: root}
	return u
}

func (u *viewerUI) newInput(submit func(string)) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(200, 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(&u.face),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			submit(args.InputText)
		}),
	)
}

// Focused reports whether a text input has keyboard focus.
func (u *viewerUI) Focused() bool {
	return u.idInput.IsFocused() || u.bgInput.IsFocused()
}

// Sync mirrors viewer state into the widgets: warning text, recent ids
// and the animation button pool.
func (u *viewerUI) Sync() {
	if msg, shown := u.viewer.Warning(); shown {
		u.warning.Label = msg
		u.warning.GetWidget().Visibility = widget.Visibility_Show
	} else {
		u.warning.GetWidget().Visibility = widget.Visibility_Hide
	}

	if recent := u.viewer.History.Recent(); len(recent) > 0 {
		u.recent.Label = "Recent: " + strings.Join(recent, ", ")
	}

	pool := u.viewer.Buttons()
	for len(u.buttons) < u.viewer.PoolSize() {
		i := len(u.buttons)
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{0x2a, 0x3a, 0x55, 0xff}),
				Pressed: solidNineSlice(color.RGBA{0x1a, 0x2a, 0x45, 0xff}),
			}),
			widget.ButtonOpts.Text("", &u.face, &widget.ButtonTextColor{Idle: color.White}),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(110, 24)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if active := u.viewer.Buttons(); i < len(active) {
					active[i].Click()
				}
			}),
		)
		u.buttons = append(u.buttons, btn)
		u.buttonBox.AddChild(btn)
	}
	for i, btn := range u.buttons {
		if i < len(pool) {
			if t := btn.Text(); t != nil {
				t.Label = pool[i].Label
			}
			btn.GetWidget().Visibility = widget.Visibility_Show
		} else {
			btn.GetWidget().Visibility = widget.Visibility_Hide_Blocking
		}
	}
}
