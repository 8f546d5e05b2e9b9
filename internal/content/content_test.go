package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicolab/scico/internal/domain/model"
)

func TestDefault_Tracks(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	want := map[string]struct {
		items  int
		width  float64
		period time.Duration
		dir    model.Direction
		hover  bool
	}{
		"brands":              {8, 180, 8 * time.Second, model.DirectionLeft, true},
		"podcasts":            {6, 320, 5 * time.Second, model.DirectionLeft, true},
		"collaboration-left":  {3, 400, 15 * time.Second, model.DirectionLeft, false},
		"collaboration-right": {3, 400, 15 * time.Second, model.DirectionRight, false},
		"talks":               {10, 400, 20 * time.Second, model.DirectionLeft, true},
	}
	require.Len(t, cat.Tracks, len(want))
	for _, tr := range cat.ModelTracks() {
		w, ok := want[tr.Name]
		require.True(t, ok, tr.Name)
		assert.Equal(t, w.items, tr.Items, tr.Name)
		assert.Equal(t, w.width, tr.ItemWidth, tr.Name)
		assert.Equal(t, w.period, tr.Period, tr.Name)
		assert.Equal(t, w.dir, tr.Direction, tr.Name)
		assert.Equal(t, w.hover, tr.PauseOnHover, tr.Name)
	}

	assert.Equal(t, "SCICO", cat.Intro.Letters)
	assert.Equal(t, 6*time.Second, cat.Intro.SafetyTimeout)
	assert.Equal(t, "/videos/DNA.mp4", cat.Hero.Video)
	assert.Len(t, cat.Hero.Images, 4)
	assert.Equal(t, 7*time.Second, cat.Hero.Rotation)
	assert.Len(t, cat.Podcasts, 6)
}

func TestTrack_ImageURL(t *testing.T) {
	tr := Track{Image: "/images/brands/brand-{n}.png"}
	assert.Equal(t, "/images/brands/brand-3.png", tr.ImageURL(3))

	tr = Track{Image: "/images/brand 1.png"}
	assert.Equal(t, "/images/brand 1.png", tr.ImageURL(2))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "bad yaml",
			yaml: "tracks: [",
			msg:  "decode content catalog",
		},
		{
			name: "missing name",
			yaml: "tracks:\n  - {items: 1, item_width: 10, period: 1s, direction: left, placeholder: brand}",
			msg:  "has no name",
		},
		{
			name: "duplicate",
			yaml: "tracks:\n  - {name: a, items: 1, item_width: 10, period: 1s, direction: left, placeholder: brand}\n  - {name: a, items: 1, item_width: 10, period: 1s, direction: left, placeholder: brand}",
			msg:  "duplicate track",
		},
		{
			name: "zero period",
			yaml: "tracks:\n  - {name: a, items: 1, item_width: 10, direction: left, placeholder: brand}",
			msg:  "positive period",
		},
		{
			name: "bad direction",
			yaml: "tracks:\n  - {name: a, items: 1, item_width: 10, period: 1s, direction: up, placeholder: brand}",
			msg:  "left or right",
		},
		{
			name: "unknown placeholder",
			yaml: "tracks:\n  - {name: a, items: 1, item_width: 10, period: 1s, direction: left, placeholder: poster}",
			msg:  "unknown placeholder",
		},
		{
			name: "dangling section track",
			yaml: "sections:\n  - {id: s, track: nope}",
			msg:  "unknown track",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	cat, err := Parse([]byte("site: {title: X}"))
	require.NoError(t, err)
	assert.Equal(t, "SCICO", cat.Intro.Letters)
	assert.Equal(t, 7*time.Second, cat.Hero.Rotation)
}

func TestProvider_Replace(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)
	p := NewProvider(first)
	assert.Same(t, first, p.Get())
	assert.Equal(t, 1, p.Version())

	var seen *Catalog
	p.OnChange(func(c *Catalog) { seen = c })

	second := &Catalog{Site: Site{Title: "Other"}}
	p.Replace(second)
	assert.Same(t, second, p.Get())
	assert.Same(t, second, seen)
	assert.Equal(t, 2, p.Version())
}

func TestProvider_OnChangeSnapshot(t *testing.T) {
	p := NewProvider(&Catalog{})

	var calls []string
	p.OnChange(func(*Catalog) {
		calls = append(calls, "first")
		p.OnChange(func(*Catalog) { calls = append(calls, "late") })
	})
	p.OnChange(func(*Catalog) { calls = append(calls, "second") })

	p.Replace(&Catalog{})
	assert.Equal(t, []string{"first", "second"}, calls, "callbacks added during Replace wait for the next one")

	calls = nil
	p.Replace(&Catalog{})
	assert.Equal(t, []string{"first", "second", "late"}, calls)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0o600))

	first, err := LoadFile(path)
	require.NoError(t, err)
	p := NewProvider(first)

	w, err := NewWatcher(path, p)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// A broken file keeps the previous catalog.
	require.NoError(t, os.WriteFile(path, []byte("tracks: ["), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, p.Version())

	updated := strings.Replace(string(defaultCatalog), "title: SciCo", "title: SciCo Labs", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	require.Eventually(t, func() bool {
		return p.Get().Site.Title == "SciCo Labs"
	}, 2*time.Second, 10*time.Millisecond)
}
