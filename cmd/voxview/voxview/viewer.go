package voxview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/CanisArtorus/Voreeal/volume"
	"github.com/CanisArtorus/Voreeal/voxel"
)

// RenderMode determines how voxels are mapped to terminal cells
type RenderMode uint8

const (
	// ModeBlocks draws each voxel as a 2-column block of full-block runes
	ModeBlocks RenderMode = iota
	// ModeHalf packs two voxel rows into one terminal row using half-block runes
	ModeHalf
)

// String returns human-readable mode name
func (m RenderMode) String() string {
	switch m {
	case ModeBlocks:
		return "Blocks"
	case ModeHalf:
		return "Half"
	default:
		return "Unknown"
	}
}

// MaxScale caps the integer zoom factor
const MaxScale = 16

// Cell is a single terminal cell ready for blitting
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Frame is an off-screen cell grid assembled before blitting to the screen
type Frame struct {
	W, H  int
	cells []Cell
}

// NewFrame creates an empty frame of the given dimensions
func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{W: w, H: h, cells: make([]Cell, w*h)}
}

// Set writes a cell, ignoring out-of-bounds coordinates
func (f *Frame) Set(x, y int, r rune, style tcell.Style) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	f.cells[y*f.W+x] = Cell{Rune: r, Style: style}
}

// At returns the cell at (x, y), a zero cell outside the frame
func (f *Frame) At(x, y int) Cell {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return Cell{}
	}
	return f.cells[y*f.W+x]
}

// Fill overwrites every cell in the frame
func (f *Frame) Fill(r rune, style tcell.Style) {
	for i := range f.cells {
		f.cells[i] = Cell{Rune: r, Style: style}
	}
}

// RenderedSlice holds the cell conversion of one volume slice
type RenderedSlice struct {
	Cells  []Cell
	Width  int
	Height int
}

// OutputSize returns the cell dimensions a slice of sliceW x sliceH
// voxels occupies at the given mode and scale
func OutputSize(sliceW, sliceH int, mode RenderMode, scale int) (outW, outH int) {
	if scale < 1 {
		scale = 1
	}
	if sliceW <= 0 || sliceH <= 0 {
		return 0, 0
	}
	if mode == ModeHalf {
		return sliceW * scale, (sliceH*scale + 1) / 2
	}
	// Two columns per voxel compensate for terminal character proportions
	return sliceW * 2 * scale, sliceH * scale
}

func voxelColor(c voxel.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// RenderSlice converts a volume slice to terminal cells. Rows are
// flipped so the highest v coordinate lands at the top of the output,
// keeping Z up for side views.
func RenderSlice(sl volume.Slice, pal *voxel.Palette, mode RenderMode, scale int, bg tcell.Color) *RenderedSlice {
	if scale < 1 {
		scale = 1
	}

	outW, outH := OutputSize(sl.W, sl.H, mode, scale)
	cells := make([]Cell, outW*outH)

	if mode == ModeHalf {
		renderHalf(sl, pal, scale, bg, cells, outW, outH)
	} else {
		renderBlocks(sl, pal, scale, bg, cells, outW, outH)
	}

	return &RenderedSlice{
		Cells:  cells,
		Width:  outW,
		Height: outH,
	}
}

// renderBlocks maps each voxel to a scale-row by 2*scale-column block
func renderBlocks(sl volume.Slice, pal *voxel.Palette, scale int, bg tcell.Color, cells []Cell, outW, outH int) {
	bgStyle := tcell.StyleDefault.Background(bg)

	for y := 0; y < outH; y++ {
		v := sl.H - 1 - y/scale
		for x := 0; x < outW; x++ {
			u := x / (2 * scale)
			idx := sl.At(u, v)

			cell := Cell{Rune: ' ', Style: bgStyle}
			if idx != 0 {
				cell = Cell{
					Rune:  '█',
					Style: tcell.StyleDefault.Foreground(voxelColor(pal[idx])).Background(bg),
				}
			}
			cells[y*outW+x] = cell
		}
	}
}

// renderHalf pairs vertical voxel pixels into half-block cells, upper
// pixel in the foreground, lower in the background
func renderHalf(sl volume.Slice, pal *voxel.Palette, scale int, bg tcell.Color, cells []Cell, outW, outH int) {
	bgStyle := tcell.StyleDefault.Background(bg)
	gridH := sl.H * scale

	// pixelIndex resolves a vertical pixel row (0 = top) to a palette index
	pixelIndex := func(u, pixel int) uint8 {
		if pixel >= gridH {
			return 0
		}
		v := sl.H - 1 - pixel/scale
		return sl.At(u, v)
	}

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			u := x / scale
			upper := pixelIndex(u, y*2)
			lower := pixelIndex(u, y*2+1)

			var cell Cell
			switch {
			case upper == 0 && lower == 0:
				cell = Cell{Rune: ' ', Style: bgStyle}
			case lower == 0:
				cell = Cell{
					Rune:  '▀',
					Style: tcell.StyleDefault.Foreground(voxelColor(pal[upper])).Background(bg),
				}
			case upper == 0:
				cell = Cell{
					Rune:  '▄',
					Style: tcell.StyleDefault.Foreground(voxelColor(pal[lower])).Background(bg),
				}
			default:
				cell = Cell{
					Rune:  '▀',
					Style: tcell.StyleDefault.Foreground(voxelColor(pal[upper])).Background(voxelColor(pal[lower])),
				}
			}
			cells[y*outW+x] = cell
		}
	}
}

// Viewer manages slice display with viewport and navigation
type Viewer struct {
	vol *volume.Dense

	// Rendered slice cache
	rendered    *RenderedSlice
	renderAxis  volume.Axis
	renderIndex int
	renderMode  RenderMode
	renderScale int

	// Slice selection
	Axis  volume.Axis
	Index int

	// Display settings
	RenderMode RenderMode
	Scale      int
	Fit        bool

	// Viewport for panning (top-left corner of view)
	ViewportX int
	ViewportY int

	// Status line
	ShowStatus bool
	Background tcell.Color
}

// NewViewer creates a viewer for the given volume, starting at the
// middle Z slice
func NewViewer(vol *volume.Dense) *Viewer {
	return &Viewer{
		vol:        vol,
		Axis:       volume.AxisZ,
		Index:      vol.SliceCount(volume.AxisZ) / 2,
		RenderMode: ModeBlocks,
		Scale:      1,
		Fit:        true,
		ShowStatus: true,
		Background: tcell.ColorDefault,
	}
}

// Volume returns the viewed volume
func (v *Viewer) Volume() *volume.Dense {
	return v.vol
}

// SliceCount returns the slice count along the current axis
func (v *Viewer) SliceCount() int {
	return v.vol.SliceCount(v.Axis)
}

// sliceSize returns the voxel dimensions of the current cross-section
func (v *Viewer) sliceSize() (int, int) {
	size := v.vol.Size()
	switch v.Axis {
	case volume.AxisX:
		return size.Y, size.Z
	case volume.AxisY:
		return size.X, size.Z
	}
	return size.X, size.Y
}

// availHeight returns rows left for the slice after the status bar
func (v *Viewer) availHeight(termH int) int {
	if v.ShowStatus {
		return termH - 1
	}
	return termH
}

// FitScale returns the largest integer scale at which the current
// slice fits the terminal, at least 1
func (v *Viewer) FitScale(termW, termH int) int {
	w, h := v.sliceSize()
	availH := v.availHeight(termH)

	best := 1
	for k := 1; k <= MaxScale; k++ {
		ow, oh := OutputSize(w, h, v.RenderMode, k)
		if ow > termW || oh > availH {
			break
		}
		best = k
	}
	return best
}

// Update re-renders the slice if any display parameter changed
func (v *Viewer) Update(termW, termH int) {
	if v.Fit {
		v.Scale = v.FitScale(termW, termH)
	}
	if v.Scale < 1 {
		v.Scale = 1
	}
	if v.Scale > MaxScale {
		v.Scale = MaxScale
	}

	if v.rendered == nil || v.renderAxis != v.Axis || v.renderIndex != v.Index ||
		v.renderMode != v.RenderMode || v.renderScale != v.Scale {
		sl := v.vol.Slice(v.Axis, v.Index)
		v.rendered = RenderSlice(sl, &v.vol.Palette, v.RenderMode, v.Scale, v.Background)
		v.renderAxis = v.Axis
		v.renderIndex = v.Index
		v.renderMode = v.RenderMode
		v.renderScale = v.Scale
	}

	v.clampViewport(termW, termH)
}

// ForceUpdate forces re-rendering (e.g. after a background change)
func (v *Viewer) ForceUpdate(termW, termH int) {
	v.rendered = nil
	v.Update(termW, termH)
}

// clampViewport ensures viewport stays within bounds
func (v *Viewer) clampViewport(termW, termH int) {
	if v.rendered == nil {
		v.ViewportX = 0
		v.ViewportY = 0
		return
	}

	maxX := v.rendered.Width - termW
	maxY := v.rendered.Height - v.availHeight(termH)

	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}

	if v.ViewportX < 0 {
		v.ViewportX = 0
	}
	if v.ViewportX > maxX {
		v.ViewportX = maxX
	}
	if v.ViewportY < 0 {
		v.ViewportY = 0
	}
	if v.ViewportY > maxY {
		v.ViewportY = maxY
	}
}

// Pan moves the viewport by delta
func (v *Viewer) Pan(dx, dy int, termW, termH int) {
	v.ViewportX += dx
	v.ViewportY += dy
	v.clampViewport(termW, termH)
}

// PanTo moves viewport to absolute position
func (v *Viewer) PanTo(x, y int, termW, termH int) {
	v.ViewportX = x
	v.ViewportY = y
	v.clampViewport(termW, termH)
}

// StepSlice moves the slice index by delta, clamped to the volume
func (v *Viewer) StepSlice(delta int) {
	v.JumpSlice(v.Index + delta)
}

// JumpSlice selects an absolute slice index, clamped to the volume
func (v *Viewer) JumpSlice(index int) {
	count := v.SliceCount()
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	v.Index = index
}

// SetAxis switches the slicing axis, keeping the index valid
func (v *Viewer) SetAxis(axis volume.Axis) {
	if axis == v.Axis {
		return
	}
	v.Axis = axis
	v.JumpSlice(v.Index)
	v.ViewportX = 0
	v.ViewportY = 0
}

// ToggleRenderMode cycles render modes
func (v *Viewer) ToggleRenderMode() {
	if v.RenderMode == ModeBlocks {
		v.RenderMode = ModeHalf
	} else {
		v.RenderMode = ModeBlocks
	}
}

// SetScale sets an explicit zoom scale and leaves fit mode
func (v *Viewer) SetScale(scale int) {
	if scale < 1 {
		scale = 1
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	v.Fit = false
	v.Scale = scale
}

// AdjustScale changes zoom scale by delta and leaves fit mode
func (v *Viewer) AdjustScale(delta int) {
	v.SetScale(v.Scale + delta)
}

// NeedsPanning returns true if the rendered slice exceeds the viewport
func (v *Viewer) NeedsPanning(termW, termH int) bool {
	if v.rendered == nil {
		return false
	}
	return v.rendered.Width > termW || v.rendered.Height > v.availHeight(termH)
}

// Render draws the current slice into the frame
func (v *Viewer) Render(f *Frame) {
	f.Fill(' ', tcell.StyleDefault.Background(v.Background))

	if v.rendered == nil {
		return
	}

	availH := v.availHeight(f.H)

	// Center slices smaller than the terminal
	offsetX := 0
	offsetY := 0
	if v.rendered.Width < f.W {
		offsetX = (f.W - v.rendered.Width) / 2
	}
	if v.rendered.Height < availH {
		offsetY = (availH - v.rendered.Height) / 2
	}

	for y := 0; y < availH; y++ {
		srcY := y + v.ViewportY - offsetY
		if srcY < 0 || srcY >= v.rendered.Height {
			continue
		}

		for x := 0; x < f.W; x++ {
			srcX := x + v.ViewportX - offsetX
			if srcX < 0 || srcX >= v.rendered.Width {
				continue
			}

			cell := v.rendered.Cells[srcY*v.rendered.Width+srcX]
			f.Set(x, y, cell.Rune, cell.Style)
		}
	}

	if v.ShowStatus {
		v.renderStatus(f)
	}
}

// renderStatus draws the status line at the bottom of the frame
func (v *Viewer) renderStatus(f *Frame) {
	y := f.H - 1
	if y < 0 {
		return
	}

	statusStyle := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(200, 200, 200)).
		Background(tcell.NewRGBColor(40, 40, 50))
	keyStyle := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(100, 180, 255)).
		Background(tcell.NewRGBColor(40, 40, 50))

	for x := 0; x < f.W; x++ {
		f.Set(x, y, ' ', statusStyle)
	}

	size := v.vol.Size()
	fitStr := ""
	if v.Fit {
		fitStr = " fit"
	}

	status := fmt.Sprintf(" %dx%dx%d | %s %d/%d | %s | x%d%s ",
		size.X, size.Y, size.Z,
		v.Axis, v.Index+1, v.SliceCount(),
		v.RenderMode, v.Scale, fitStr)

	// Position info for panning
	if v.NeedsPanning(f.W, f.H) {
		status += fmt.Sprintf("| [%d,%d] ", v.ViewportX, v.ViewportY)
	}

	help := " q:quit x/y/z:axis ,/.:slice m:mode f:fit ±:zoom hjkl:pan"

	x := 0
	for _, r := range status {
		if x >= f.W {
			break
		}
		f.Set(x, y, r, statusStyle)
		x++
	}

	// Help keys, right-aligned when there is room
	helpStart := f.W - len([]rune(help))
	if helpStart > x {
		x = helpStart
		for _, r := range help {
			if x >= f.W {
				break
			}
			style := statusStyle
			if r == ':' || (r >= 'a' && r <= 'z') {
				style = keyStyle
			}
			f.Set(x, y, r, style)
			x++
		}
	}
}
