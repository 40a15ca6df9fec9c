// Command ggscale renders an image onto a simulated device surface, shrinking
// it as far as the device requires, and saves what the device would show.
//
// Usage:
//
//	ggscale [flags] <input>
//
// Example:
//
//	ggscale -surface limited:legacy-mobile -out page.png scan.tiff
//	ggscale -dir -1 -out pages.png multipage.tiff
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/codec"
	"github.com/gogpu/ggscale/surface"
)

// allDirectories selects every directory of a multi-page TIFF.
const allDirectories = -1

type config struct {
	input       string
	output      string
	surface     string
	userAgent   string
	constrained bool
	maxScale    int
	workers     int
	dump        bool
	dir         int
	verbose     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("ggscale", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	fs.StringVar(&cfg.output, "out", "out.png", "output PNG file")
	fs.StringVar(&cfg.surface, "surface", "limited:mobile",
		"surface backend ("+strings.Join(surface.List(), ", ")+")")
	fs.StringVar(&cfg.userAgent, "ua", "", "decide whether to probe from this browser user agent")
	fs.BoolVar(&cfg.constrained, "constrained", false, "always probe the surface")
	fs.IntVar(&cfg.maxScale, "max-scale", 0, "largest scale to probe (0 = default)")
	fs.IntVar(&cfg.workers, "workers", 0, "downsample workers (0 = sequential, -1 = GOMAXPROCS)")
	fs.BoolVar(&cfg.dump, "dump", false, "also write the presented pixels as .rgbz")
	fs.IntVar(&cfg.dir, "dir", 0, "TIFF directory to render (-1 = all)")
	fs.BoolVar(&cfg.verbose, "v", false, "log probe trials and render decisions")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ggscale [flags] <input>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one input file")
	}
	cfg.input = fs.Arg(0)
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if cfg.verbose {
		ggscale.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data, err := os.ReadFile(cfg.input)
	if err != nil {
		return err
	}
	images, err := decode(data, cfg.dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := ggscale.NewRenderer(rendererOptions(cfg)...)
	defer r.Close()

	names := outputNames(cfg.output, len(images))
	p := message.NewPrinter(language.English)

	for _, img := range images {
		name := names.Next()
		res, err := renderOne(ctx, r, img, cfg, name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.Fprintf(stdout, "%s: %d x %d -> %d x %d (scale %d, %d probes, %d pixels)\n",
			name, img.Width, img.Height, res.Width, res.Height, res.Scale, res.Attempts, res.Width*res.Height)
	}
	return nil
}

func rendererOptions(cfg *config) []ggscale.Option {
	opts := []ggscale.Option{
		ggscale.WithMaxScale(cfg.maxScale),
		ggscale.WithIDs(ggscale.NewSequence("r", "")),
	}
	switch {
	case cfg.constrained:
		opts = append(opts, ggscale.WithDevice(ggscale.Constrained(true)))
	case cfg.userAgent != "":
		opts = append(opts, ggscale.WithDevice(ggscale.UserAgent(cfg.userAgent)))
	}
	if cfg.workers != 0 {
		opts = append(opts, ggscale.WithWorkers(cfg.workers))
	}
	return opts
}

// decode returns the images to render: one directory (or all of them) for
// TIFF input, the single image otherwise.
func decode(data []byte, dir int) ([]*codec.Image, error) {
	t, err := codec.OpenTIFF(data)
	if err != nil {
		if dir > 0 {
			return nil, fmt.Errorf("-dir %d needs a TIFF input", dir)
		}
		img, err := codec.Decode(data)
		if err != nil {
			return nil, err
		}
		return []*codec.Image{img}, nil
	}

	dirs := []int{dir}
	if dir == allDirectories {
		dirs = make([]int, t.CountDirectories())
		for i := range dirs {
			dirs[i] = i
		}
	}

	images := make([]*codec.Image, 0, len(dirs))
	for _, d := range dirs {
		if err := t.SetDirectory(d); err != nil {
			return nil, err
		}
		img, err := t.Decode()
		if err != nil {
			return nil, fmt.Errorf("directory %d: %w", d, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// outputNames yields output for a single image and output-1, output-2, ...
// (before the extension) for several.
func outputNames(output string, n int) ggscale.IDGenerator {
	if n == 1 {
		return fixedName(output)
	}
	ext := filepath.Ext(output)
	return ggscale.NewSequence(strings.TrimSuffix(output, ext)+"-", ext)
}

type fixedName string

func (f fixedName) Next() string { return string(f) }

func renderOne(ctx context.Context, r *ggscale.Renderer, img *codec.Image, cfg *config, name string) (ggscale.Result, error) {
	src, err := ggscale.WrapPixels(img.Pix, img.Width, img.Height)
	if err != nil {
		return ggscale.Result{}, err
	}

	s, err := surface.NewSurfaceByName(cfg.surface, 1, 1)
	if err != nil {
		return ggscale.Result{}, err
	}
	defer s.Close()

	res, err := r.Render(ctx, src, s)
	if err != nil {
		return res, err
	}

	shown := s.Snapshot()
	out, err := ggscale.WrapPixels(shown.Pix, res.Width, res.Height)
	if err != nil {
		return res, err
	}
	if err := out.SavePNG(name); err != nil {
		return res, err
	}

	if cfg.dump {
		if err := dump(strings.TrimSuffix(name, filepath.Ext(name))+".rgbz", out); err != nil {
			return res, err
		}
	}
	return res, nil
}

func dump(path string, p *ggscale.PixelBuffer) error {
	f, err := os.Create(path) //nolint:gosec // path derives from the user's -out flag
	if err != nil {
		return err
	}
	werr := codec.WriteRaw(f, &codec.Image{Width: p.Width(), Height: p.Height(), Pix: p.Pix()})
	if err := f.Close(); werr == nil {
		werr = err
	}
	return werr
}
