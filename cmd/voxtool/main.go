// voxtool inspects and converts voxel model files from the command
// line: metadata queries, slice exports, snapshot packing, heightmap
// extrusion, and a small SQLite-backed model catalog.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"os"

	"github.com/alecthomas/kong"
	"github.com/disintegration/imaging"
	"github.com/zeebo/blake3"

	"github.com/CanisArtorus/Voreeal/catalog"
	"github.com/CanisArtorus/Voreeal/importer"
	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/volume"
	"github.com/CanisArtorus/Voreeal/vox"
	"github.com/CanisArtorus/Voreeal/voxel"
)

const version = "0.1.0"

var CLI struct {
	Info      InfoCmd      `cmd:"" help:"Show model metadata"`
	Export    ExportCmd    `cmd:"" help:"Export one slice of a model as a PNG image"`
	Pack      PackCmd      `cmd:"" help:"Convert a model into a compressed volume snapshot"`
	Unpack    UnpackCmd    `cmd:"" help:"Convert a volume snapshot back into a MagicaVoxel model"`
	Heightmap HeightmapCmd `cmd:"" help:"Extrude an image heightmap into a volume snapshot"`
	Catalog   CatalogCmd   `cmd:"" help:"Manage the model catalog"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// InfoCmd reports the metadata of a single model file.
type InfoCmd struct {
	Path string `arg:"" help:"Path to a model or snapshot file" type:"existingfile"`
	JSON bool   `help:"Output as JSON"`
}

type modelInfo struct {
	Path         string  `json:"path"`
	Format       string  `json:"format"`
	Size         [3]int  `json:"size"`
	Voxels       int     `json:"voxels"`
	FillPercent  float64 `json:"fill_percent"`
	ContentLower [3]int  `json:"content_lower"`
	ContentUpper [3]int  `json:"content_upper"`
	Palette      string  `json:"palette"`
	FileSize     int64   `json:"file_size"`
	Digest       string  `json:"digest"`
}

func (c *InfoCmd) Run() error {
	info, err := inspect(c.Path)
	if err != nil {
		return err
	}

	if c.JSON {
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Model: %s\n", info.Path)
	fmt.Printf("  Format: %s\n", info.Format)
	fmt.Printf("  Size: %dx%dx%d\n", info.Size[0], info.Size[1], info.Size[2])
	fmt.Printf("  Voxels: %d (%.1f%% filled)\n", info.Voxels, info.FillPercent)
	if info.Voxels > 0 {
		fmt.Printf("  Content: (%d,%d,%d) to (%d,%d,%d)\n",
			info.ContentLower[0], info.ContentLower[1], info.ContentLower[2],
			info.ContentUpper[0], info.ContentUpper[1], info.ContentUpper[2])
	}
	fmt.Printf("  Palette: %s\n", info.Palette)
	fmt.Printf("  File: %d bytes\n", info.FileSize)
	fmt.Printf("  BLAKE3: %s\n", info.Digest)
	return nil
}

// inspect reads a model file and summarizes it without materializing a
// full volume for the vox case.
func inspect(path string) (*modelInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	sum := blake3.Sum256(data)
	format := importer.Detect(data)
	info := &modelInfo{
		Path:     path,
		Format:   format.String(),
		FileSize: int64(len(data)),
		Digest:   hex.EncodeToString(sum[:]),
	}

	var content voxel.Region
	switch format {
	case importer.FormatVox:
		m, err := vox.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode model: %w", err)
		}
		info.Size = [3]int{m.Size.X, m.Size.Y, m.Size.Z}
		info.Voxels = len(m.Voxels)
		content = m.ContentRegion()
		if m.CustomPalette {
			info.Palette = "custom"
		} else {
			info.Palette = "default"
		}
	case importer.FormatSnapshot:
		vol, err := volume.ReadSnapshot(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		size := vol.Size()
		info.Size = [3]int{size.X, size.Y, size.Z}
		info.Voxels = vol.VoxelCount()
		content = vol.ContentRegion()
		info.Palette = "embedded"
	default:
		return nil, importer.ErrUnknownFormat
	}

	if cells := info.Size[0] * info.Size[1] * info.Size[2]; cells > 0 {
		info.FillPercent = float64(info.Voxels) / float64(cells) * 100
	}
	lower, upper := content.Min(), content.Max()
	info.ContentLower = [3]int{lower.X, lower.Y, lower.Z}
	info.ContentUpper = [3]int{upper.X, upper.Y, upper.Z}
	return info, nil
}

// ExportCmd rasterizes one slice of a model into a PNG file.
type ExportCmd struct {
	Path  string `arg:"" help:"Path to a model or snapshot file" type:"existingfile"`
	Out   string `required:"" short:"o" help:"Output PNG path" type:"path"`
	Axis  string `help:"Slice axis" enum:"x,y,z" default:"z"`
	Slice int    `help:"Slice index (default: middle slice)" default:"-1"`
	Scale int    `help:"Integer upscale factor" default:"1"`
}

func (c *ExportCmd) Run() error {
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1")
	}

	vol, err := importer.ImportFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	axis := parseAxis(c.Axis)
	count := vol.SliceCount(axis)
	if count == 0 {
		return fmt.Errorf("model has no extent along %s", axis)
	}
	idx := c.Slice
	if idx < 0 {
		idx = count / 2
	}
	if idx >= count {
		return fmt.Errorf("slice index %d out of range [0,%d]", idx, count-1)
	}

	img := sliceImage(vol, axis, idx)
	out := image.Image(img)
	if c.Scale > 1 {
		b := img.Bounds()
		// Nearest neighbor keeps voxel edges hard
		out = imaging.Resize(img, b.Dx()*c.Scale, b.Dy()*c.Scale, imaging.NearestNeighbor)
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	b := out.Bounds()
	fmt.Printf("Exported %s slice %d/%d to %s (%dx%d)\n",
		axis, idx+1, count, c.Out, b.Dx(), b.Dy())
	return nil
}

// sliceImage rasterizes one slice with the same orientation the
// interactive viewer uses: the highest v coordinate lands on the top
// row. Empty cells stay transparent.
func sliceImage(vol *volume.Dense, axis volume.Axis, index int) *image.NRGBA {
	sl := vol.Slice(axis, index)
	img := image.NewNRGBA(image.Rect(0, 0, sl.W, sl.H))
	for y := 0; y < sl.H; y++ {
		v := sl.H - 1 - y
		for u := 0; u < sl.W; u++ {
			idx := sl.At(u, v)
			if idx == 0 {
				continue
			}
			entry := vol.Palette[idx]
			img.SetNRGBA(u, y, color.NRGBA{R: entry.R, G: entry.G, B: entry.B, A: entry.A})
		}
	}
	return img
}

func parseAxis(s string) volume.Axis {
	switch s {
	case "x":
		return volume.AxisX
	case "y":
		return volume.AxisY
	}
	return volume.AxisZ
}

// PackCmd converts a model into the compressed snapshot format.
type PackCmd struct {
	Path string `arg:"" help:"Path to a model or snapshot file" type:"existingfile"`
	Out  string `required:"" short:"o" help:"Output snapshot path" type:"path"`
}

func (c *PackCmd) Run() error {
	vol, err := importer.ImportFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := volume.WriteSnapshot(f, vol); err != nil {
		f.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	info, err := os.Stat(c.Out)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	size := vol.Size()
	fmt.Printf("Packed %s\n", c.Path)
	fmt.Printf("  Size: %dx%dx%d, %d voxels\n", size.X, size.Y, size.Z, vol.VoxelCount())
	fmt.Printf("  Output: %s (%d bytes)\n", c.Out, info.Size())
	return nil
}

// UnpackCmd converts a snapshot back into a MagicaVoxel model file.
type UnpackCmd struct {
	Path string `arg:"" help:"Path to a volume snapshot" type:"existingfile"`
	Out  string `required:"" short:"o" help:"Output MagicaVoxel path" type:"path"`
}

func (c *UnpackCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	vol, err := volume.ReadSnapshot(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	m, err := importer.ToModel(vol)
	if err != nil {
		return fmt.Errorf("failed to convert volume: %w", err)
	}

	out, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := vox.Encode(out, m); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}

	fmt.Printf("Unpacked %s\n", c.Path)
	fmt.Printf("  Size: %dx%dx%d, %d voxels\n", m.Size.X, m.Size.Y, m.Size.Z, len(m.Voxels))
	fmt.Printf("  Output: %s\n", c.Out)
	return nil
}

// HeightmapCmd extrudes an image into voxel columns.
type HeightmapCmd struct {
	Image  string `arg:"" help:"Path to a heightmap image" type:"existingfile"`
	Out    string `required:"" short:"o" help:"Output snapshot path" type:"path"`
	Height int    `help:"Tallest column in voxels" default:"32"`
	Width  int    `help:"Resample the image to this width before extruding (0 keeps the source size)" default:"0"`
}

func (c *HeightmapCmd) Run() error {
	if c.Height < 1 {
		return fmt.Errorf("height must be at least 1")
	}

	f, err := os.Open(c.Image)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if c.Width > 0 && img.Bounds().Dx() > 0 {
		b := img.Bounds()
		h := b.Dy() * c.Width / b.Dx()
		if h < 1 {
			h = 1
		}
		img = imaging.Resize(img, c.Width, h, imaging.Lanczos)
	}

	vol := extrudeHeightmap(img, c.Height)

	out, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := volume.WriteSnapshot(out, vol); err != nil {
		out.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	size := vol.Size()
	fmt.Printf("Extruded %s\n", c.Image)
	fmt.Printf("  Size: %dx%dx%d, %d voxels\n", size.X, size.Y, size.Z, vol.VoxelCount())
	fmt.Printf("  Output: %s\n", c.Out)
	return nil
}

// extrudeHeightmap turns image luminance into column heights: bright
// pixels become tall columns, black and fully transparent pixels stay
// empty. The image top row maps to the highest Y so a Z slice reads
// like the source image.
func extrudeHeightmap(img image.Image, maxHeight int) *volume.Dense {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	vol := volume.New(vmath.Vec3{X: w, Y: h, Z: maxHeight})
	vol.Palette = vox.DefaultPalette()

	for py := 0; py < h; py++ {
		y := h - 1 - py
		for px := 0; px < w; px++ {
			r, g, bl, a := img.At(b.Min.X+px, b.Min.Y+py).RGBA()
			if a == 0 {
				continue
			}
			entry := voxel.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 255}

			// Rec. 601 luma in integer math, rounded up so any
			// non-black pixel yields at least one voxel
			luma := (int(entry.R)*299 + int(entry.G)*587 + int(entry.B)*114) / 1000
			height := (luma*maxHeight + 254) / 255

			idx := vol.Palette.NearestIndex(entry)
			for z := 0; z < height; z++ {
				vol.Set(px, y, z, idx)
			}
		}
	}
	return vol
}

// CatalogCmd holds the catalog subcommands and the shared database
// flag.
type CatalogCmd struct {
	DB string `help:"Catalog database path" default:"voxtool.db" type:"path"`

	Add    CatalogAddCmd    `cmd:"" help:"Add a model file to the catalog"`
	List   CatalogListCmd   `cmd:"" help:"List cataloged models"`
	Remove CatalogRemoveCmd `cmd:"" help:"Remove a model from the catalog"`
	Verify CatalogVerifyCmd `cmd:"" help:"Re-hash cataloged files and report changes"`
}

// CatalogAddCmd registers one model file.
type CatalogAddCmd struct {
	Path string `arg:"" help:"Path to a model file" type:"existingfile"`
	Name string `help:"Catalog name (default: file name without extension)"`
}

func (c *CatalogAddCmd) Run() error {
	cat, err := catalog.Open(CLI.Catalog.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	asset, err := cat.Add(c.Path, c.Name)
	if err != nil {
		return fmt.Errorf("failed to add model: %w", err)
	}

	fmt.Printf("Added %s\n", asset.Name)
	fmt.Printf("  ID: %s\n", asset.ID)
	fmt.Printf("  Size: %dx%dx%d, %d voxels\n",
		asset.Size.X, asset.Size.Y, asset.Size.Z, asset.VoxelCount)
	fmt.Printf("  BLAKE3: %s\n", asset.Digest)
	return nil
}

// CatalogListCmd prints every cataloged model.
type CatalogListCmd struct{}

func (c *CatalogListCmd) Run() error {
	cat, err := catalog.Open(CLI.Catalog.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	assets, err := cat.List()
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(assets) == 0 {
		fmt.Println("Catalog is empty")
		return nil
	}

	fmt.Printf("%d model(s):\n\n", len(assets))
	for _, a := range assets {
		size := fmt.Sprintf("%dx%dx%d", a.Size.X, a.Size.Y, a.Size.Z)
		fmt.Printf("  %-20s %-12s %8d voxels  %s\n", a.Name, size, a.VoxelCount, a.Path)
	}
	return nil
}

// CatalogRemoveCmd drops a model record.
type CatalogRemoveCmd struct {
	Ref string `arg:"" help:"Asset ID or name"`
}

func (c *CatalogRemoveCmd) Run() error {
	cat, err := catalog.Open(CLI.Catalog.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	if err := cat.Remove(c.Ref); err != nil {
		return fmt.Errorf("failed to remove model: %w", err)
	}
	fmt.Printf("Removed %s\n", c.Ref)
	return nil
}

// CatalogVerifyCmd re-hashes every cataloged file against its stored
// digest.
type CatalogVerifyCmd struct{}

func (c *CatalogVerifyCmd) Run() error {
	cat, err := catalog.Open(CLI.Catalog.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	assets, err := cat.List()
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(assets) == 0 {
		fmt.Println("Catalog is empty")
		return nil
	}

	failures := 0
	for _, a := range assets {
		ok, err := cat.Verify(a.ID)
		switch {
		case err != nil:
			fmt.Printf("  [FAIL] %s: %v\n", a.Name, err)
			failures++
		case !ok:
			fmt.Printf("  [FAIL] %s: content changed\n", a.Name)
			failures++
		default:
			fmt.Printf("  [OK] %s\n", a.Name)
		}
	}

	if failures > 0 {
		return fmt.Errorf("verification failed: %d error(s)", failures)
	}
	fmt.Println("Verification passed!")
	return nil
}

// VersionCmd prints the tool version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("voxtool version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("voxtool"),
		kong.Description("Voxel model inspection and conversion toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
