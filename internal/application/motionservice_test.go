package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/motion/intro"
)

func newMotionService(t *testing.T) (*MotionService, *content.Provider) {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	p := content.NewProvider(cat)
	return NewMotionService(p), p
}

func TestMotionService_Tracks(t *testing.T) {
	svc, _ := newMotionService(t)

	tracks := svc.Tracks()
	require.Len(t, tracks, 5)
	brands := tracks[0]
	assert.Equal(t, "brands", brands.Name)
	assert.Equal(t, int64(8000), brands.PeriodMS)
	assert.Equal(t, 1440.0, brands.Length)
	assert.Equal(t, 2880.0, brands.StripWidth)
	assert.Equal(t, "left", brands.Direction)
}

func TestMotionService_TimelineCachedPerCatalogVersion(t *testing.T) {
	svc, p := newMotionService(t)

	first := svc.Timeline(false)
	assert.Equal(t, "SCICO", first.Letters)
	assert.Equal(t, int64(6000), first.SafetyMS)
	assert.Equal(t, int64(100), first.HandoffMS)

	again := svc.Timeline(false)
	require.NotEmpty(t, first.Cues)
	assert.Equal(t, first.Cues[0].ImpactID, again.Cues[0].ImpactID, "cached timeline reused")

	reduced := svc.Timeline(true)
	assert.True(t, reduced.Reduced)
	assert.Equal(t, int64(700), reduced.DurationMS)

	cat := *p.Get()
	cat.Intro.Letters = "LABS!"
	p.Replace(&cat)
	assert.Equal(t, "LABS!", svc.Timeline(false).Letters)
}

func TestMotionService_Hero(t *testing.T) {
	svc, p := newMotionService(t)

	h := svc.Hero(1200, false)
	assert.Equal(t, "video", h.Mode)
	assert.Equal(t, 260.0, h.Radius)
	assert.Len(t, h.Items, 4)

	cat := *p.Get()
	cat.Hero.Video = ""
	p.Replace(&cat)

	assert.Equal(t, "rotating", svc.Hero(1200, false).Mode)
	assert.Equal(t, "grid", svc.Hero(1200, true).Mode)
	assert.Equal(t, 140.0, svc.Hero(320, false).Radius)
}

func TestMotionService_IntroParamsFallback(t *testing.T) {
	p := content.NewProvider(&content.Catalog{})
	svc := NewMotionService(p)
	assert.Equal(t, intro.DefaultParams().Letters, svc.IntroParams().Letters)
}
