package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/talgya/battle-isles/internal/viewport"
	"github.com/talgya/battle-isles/internal/visual"
	"github.com/talgya/battle-isles/internal/world"
)

var (
	panelBg     = color.RGBA{30, 35, 45, 230}
	labelColor  = color.RGBA{200, 200, 200, 255}
	titleColor  = color.RGBA{255, 220, 100, 255}
	buttonIdle  = color.RGBA{70, 76, 96, 255}
	buttonHover = color.RGBA{95, 102, 128, 255}
	buttonPress = color.RGBA{120, 128, 160, 255}
	buttonOff   = color.RGBA{50, 52, 60, 255}
	inputBg     = color.RGBA{15, 18, 24, 255}
)

// actions are the callbacks the panels trigger.
type actions struct {
	generate func(width, height int)
	islands  func()
	save     func(name string)
	load     func(name string)
	copyText func()
	brush    func(t world.Terrain)
}

// panels is the editor chrome around the map viewport.
type panels struct {
	ui   *ebitenui.UI
	face text.Face
	act  actions

	widthText  string
	heightText string
	nameText   string

	generateBtn *widget.Button
	status      *widget.Text
	brushLabel  *widget.Text
}

// parseDimensions reads the width and height fields. Range checks are left
// to map construction so its errors reach the status line.
func parseDimensions(w, h string) (int, int, error) {
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("width %q is not a number", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("height %q is not a number", h)
	}
	return width, height, nil
}

func loadFace(size float64) text.Face {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	return &text.GoTextFace{Source: source, Size: size}
}

func newPanels(in viewport.Insets, width, height int, name string, act actions) *panels {
	p := &panels{
		face:       loadFace(13),
		act:        act,
		widthText:  strconv.Itoa(width),
		heightText: strconv.Itoa(height),
		nameText:   name,
	}
	p.ui = p.build(in)
	p.refreshGenerate()
	return p
}

func (p *panels) build(in viewport.Insets) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	top := p.bar(in.Top, widget.AnchorLayoutPositionStart)
	p.status = p.label("no map", labelColor)
	top.AddChild(p.status)
	root.AddChild(top)

	bottom := p.bar(in.Bottom, widget.AnchorLayoutPositionEnd)
	p.brushLabel = p.label("", labelColor)
	bottom.AddChild(p.brushLabel)
	bottom.AddChild(p.label("left click paints", labelColor))
	root.AddChild(bottom)

	left := p.column(widget.AnchorLayoutPositionStart, in.Left)
	left.AddChild(p.label("Terrain", titleColor))
	for _, t := range world.Terrains {
		left.AddChild(p.swatch(t))
	}
	root.AddChild(left)

	right := p.column(widget.AnchorLayoutPositionEnd, in.Right)
	right.AddChild(p.label("Map", titleColor))
	right.AddChild(p.label("Width", labelColor))
	right.AddChild(p.input(p.widthText, func(s string) { p.widthText = s; p.refreshGenerate() }))
	right.AddChild(p.label("Height", labelColor))
	right.AddChild(p.input(p.heightText, func(s string) { p.heightText = s; p.refreshGenerate() }))
	p.generateBtn = p.button("Generate", func() {
		w, h, err := parseDimensions(p.widthText, p.heightText)
		if err != nil {
			p.setStatus(err.Error(), true)
			return
		}
		p.act.generate(w, h)
	})
	right.AddChild(p.generateBtn)
	right.AddChild(p.button("Islands", p.act.islands))
	right.AddChild(p.label("Name", labelColor))
	right.AddChild(p.input(p.nameText, func(s string) { p.nameText = s }))
	right.AddChild(p.button("Save", func() { p.act.save(strings.TrimSpace(p.nameText)) }))
	right.AddChild(p.button("Load", func() { p.act.load(strings.TrimSpace(p.nameText)) }))
	right.AddChild(p.button("Copy", p.act.copyText))
	root.AddChild(right)

	return &ebitenui.UI{Container: root}
}

// bar is a full-width strip along the top or bottom edge.
func (p *panels) bar(height int, v widget.AnchorLayoutPosition) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(24),
		)),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelBg)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   v,
				StretchHorizontal:  true,
			}),
			widget.WidgetOpts.MinSize(0, height),
		),
	)
}

// column is a side panel between the top and bottom bars.
func (p *panels) column(h widget.AnchorLayoutPosition, width int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelBg)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: h,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(width, 0),
		),
	)
}

func (p *panels) label(s string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, p.face, clr),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)
}

func (p *panels) buttonImage(idle color.Color) *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(idle),
		Hover:    image.NewNineSliceColor(buttonHover),
		Pressed:  image.NewNineSliceColor(buttonPress),
		Disabled: image.NewNineSliceColor(buttonOff),
	}
}

func (p *panels) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.buttonImage(buttonIdle)),
		widget.ButtonOpts.Text(label, p.face, &widget.ButtonTextColor{
			Idle:     color.White,
			Disabled: color.RGBA{110, 110, 110, 255},
		}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(4)),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// swatch is a palette button filled with the terrain colour.
func (p *panels) swatch(t world.Terrain) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.buttonImage(visual.Color(t))),
		widget.ButtonOpts.Text(t.String(), p.face, &widget.ButtonTextColor{
			Idle:     color.White,
			Disabled: color.White,
		}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(4)),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			p.act.brush(t)
		}),
	)
}

func (p *panels) input(initial string, onChange func(string)) *widget.TextInput {
	in := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(inputBg),
			Disabled: image.NewNineSliceColor(buttonOff),
		}),
		widget.TextInputOpts.Face(p.face),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.White,
			Disabled:      labelColor,
			Caret:         color.White,
			DisabledCaret: labelColor,
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
		widget.TextInputOpts.CaretOpts(widget.CaretOpts.Size(p.face, 2)),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChange(args.InputText)
		}),
	)
	in.SetText(initial)
	return in
}

// refreshGenerate enables Generate only while both fields hold numbers.
func (p *panels) refreshGenerate() {
	if p.generateBtn == nil {
		return
	}
	_, _, err := parseDimensions(p.widthText, p.heightText)
	p.generateBtn.GetWidget().Disabled = err != nil
}

func (p *panels) setStatus(s string, isErr bool) {
	if isErr {
		s = "error: " + s
	}
	p.status.Label = s
}

func (p *panels) setBrush(t world.Terrain) {
	p.brushLabel.Label = "brush: " + t.String()
}
