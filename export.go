package badge

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Frame file formats understood by ExportFrames.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ExportOptions controls ExportFrames.
type ExportOptions struct {
	FPS    int
	Format string
	// Scale applies to PNG frames only.
	Scale float64
	// Workers bounds the number of frames rendered at once. Zero means one
	// per CPU.
	Workers int
}

// ExportFrames writes one file per frame of the animation into dir, named
// frame0000.svg, frame0001.svg and so on, and returns their paths in play
// order. Frames are independent of each other and are rendered in
// parallel.
func ExportFrames(ctx context.Context, b *Badge, dir string, opts ExportOptions) ([]string, error) {
	if opts.Format != FormatSVG && opts.Format != FormatPNG {
		return nil, fmt.Errorf("unsupported frame format %q", opts.Format)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	times, err := b.FrameTimes(opts.FPS)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}

	files := make([]string, len(times))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, at := range times {
		i, at := i, at
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := filepath.Join(dir, fmt.Sprintf("frame%04d.%s", i, opts.Format))
			if err := writeFrame(b, at, name, opts); err != nil {
				return fmt.Errorf("frame %d at %s: %w", i, at, err)
			}
			files[i] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func writeFrame(b *Badge, at time.Duration, name string, opts ExportOptions) (err error) {
	frame, err := b.Frame(at)
	if err != nil {
		return err
	}
	frame.Name = name

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if opts.Format == FormatSVG {
		return frame.Encode(f)
	}
	img, err := frame.Rasterize(opts.Scale)
	if err != nil {
		return err
	}
	return png.Encode(f, img)
}
