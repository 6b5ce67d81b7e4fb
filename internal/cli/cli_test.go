package cli

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vasalvit/badge"
	"github.com/vasalvit/badge/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func noWindow(*badge.Badge, float64) error { return nil }

func newRootCmd(run func(*badge.Badge, float64) error) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "badge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.DefineFlags(rootCmd)
	rootCmd.AddCommand(Render(), Animate(), Frames(), Inspect(), Preview(run), GenConfig(), VersionCmd())
	return rootCmd
}

func execute(t *testing.T, run func(*badge.Badge, float64) error, args ...string) error {
	t.Helper()
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	rootCmd := newRootCmd(run)
	rootCmd.SetArgs(append(args, "--log.level", "none"))
	return rootCmd.ExecuteContext(context.Background())
}

func finalPaths(t *testing.T) []*badge.Path {
	t.Helper()
	b, err := badge.New(badge.DefaultConfig())
	require.NoError(t, err)
	s, err := b.Final()
	require.NoError(t, err)
	return s.AllPaths()
}

func readScene(t *testing.T, name string) *badge.Svg {
	t.Helper()
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	s, err := badge.ParseSvgFromReader(f, name)
	require.NoError(t, err)
	return s
}

func TestRenderSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "badge.svg")
	require.NoError(t, execute(t, noWindow, "render", "-o", out))

	want := finalPaths(t)
	got := readScene(t, out).AllPaths()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].D, got[i].D)
		require.Equal(t, want[i].Fill, got[i].Fill)
	}

	first := filepath.Join(t.TempDir(), "first.svg")
	require.NoError(t, execute(t, noWindow, "render", "--at", "0s", "-o", first))
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	require.NotContains(t, string(data), " d=")
}

func TestRenderPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "badge.png")
	require.NoError(t, execute(t, noWindow, "render", "-o", out, "--scale", "0.25"))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 128, img.Bounds().Dx())
}

func TestRenderBadConfig(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, execute(t, noWindow, "render", "-c", filepath.Join(dir, "missing.toml"), "-o", filepath.Join(dir, "badge.svg")))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[badge]\nthickness = 300\n"), 0644))
	require.Error(t, execute(t, noWindow, "render", "-c", bad, "-o", filepath.Join(dir, "badge.svg")))
	_, err := os.Stat(filepath.Join(dir, "badge.svg"))
	require.True(t, os.IsNotExist(err))
}

func TestAnimate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "animated.svg")
	require.NoError(t, execute(t, noWindow, "animate", "-o", out, "--fps", "30"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), `<animate attributeName="d"`)
	for _, p := range readScene(t, out).AllPaths() {
		require.Len(t, p.Animations, 1)
	}

	require.Error(t, execute(t, noWindow, "animate", "-o", out, "--fps", "0"))
}

func TestFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	require.NoError(t, execute(t, noWindow, "frames", "-d", dir, "--fps", "10", "-w", "2"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 17)
	require.Equal(t, "frame0000.svg", entries[0].Name())

	pngDir := filepath.Join(t.TempDir(), "png")
	require.NoError(t, execute(t, noWindow, "frames", "-d", pngDir, "--fps", "5", "-f", "png", "--scale", "0.125"))
	entries, err = os.ReadDir(pngDir)
	require.NoError(t, err)
	require.Len(t, entries, 9)
	require.Equal(t, "frame0008.png", entries[8].Name())

	require.Error(t, execute(t, noWindow, "frames", "-d", dir, "-f", "gif"))
}

func TestGenConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.toml")
	require.NoError(t, execute(t, noWindow, "genconfig", "-o", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[badge]")

	require.Error(t, execute(t, noWindow, "genconfig", "-o", path), "existing file must not be overwritten")

	out := filepath.Join(dir, "badge.svg")
	require.NoError(t, execute(t, noWindow, "render", "-c", path, "-o", out))
	require.Len(t, readScene(t, out).AllPaths(), 2)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "badge.svg")
	require.NoError(t, execute(t, noWindow, "render", "-o", out))
	require.NoError(t, execute(t, noWindow, "inspect", out))

	require.Error(t, execute(t, noWindow, "inspect"))
	require.Error(t, execute(t, noWindow, "inspect", filepath.Join(dir, "missing.svg")))

	broken := filepath.Join(dir, "broken.svg")
	require.NoError(t, os.WriteFile(broken, []byte(`<svg width="10" height="10"><path d="M0,0L1,1Z#junk"/></svg>`), 0644))
	require.Error(t, execute(t, noWindow, "inspect", broken))
}

func TestPreview(t *testing.T) {
	var (
		got   *badge.Badge
		scale float64
		calls int
	)
	run := func(b *badge.Badge, s float64) error {
		got, scale = b, s
		calls++
		return nil
	}

	require.NoError(t, execute(t, run, "preview", "--scale", "2"))
	require.Equal(t, 1, calls)
	require.NotNil(t, got)
	require.Equal(t, 2.0, scale)
	require.Equal(t, badge.DefaultConfig().Width, got.Config().Width)

	require.Error(t, execute(t, run, "preview", "--scale", "0"))
	require.Equal(t, 1, calls, "window not opened with a bad scale")
}
