package demos

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/orrery/mat4"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"propeller", "robot", "solar"}, Names())
	_, err := Load("nope")
	assert.Error(t, err)
}

func TestAllDemosRender(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			ctx, err := Build(name)
			require.NoError(t, err)

			drawable := 0
			for _, nn := range ctx.Nodes() {
				n, err := ctx.Node(nn)
				require.NoError(t, err)
				if n.HasPayload() {
					drawable++
				}
			}

			calls, err := ctx.Frame()
			require.NoError(t, err)
			assert.Len(t, calls, drawable)

			for _, key := range ctx.Keys() {
				require.NoError(t, ctx.HandleKey(key), key)
			}
			_, err = ctx.Frame()
			require.NoError(t, err)
		})
	}
}

func TestSolarLayout(t *testing.T) {
	ctx, err := Build("solar")
	require.NoError(t, err)
	assert.Equal(t, 7, ctx.Root.Count())

	// the moon sits 3 units from the planet, which sits 15 from the sun
	planet, err := ctx.World("planet")
	require.NoError(t, err)
	moon, err := ctx.World("moon")
	require.NoError(t, err)
	assert.InDelta(t, 15, mat4.TranslationOf(planet).Len(), 1e-4)
	assert.InDelta(t, 3, mat4.TranslationOf(moon).Sub(mat4.TranslationOf(planet)).Len(), 1e-4)

	for i := 0; i < 90; i++ {
		require.NoError(t, ctx.HandleKey("l"))
	}
	planet, _ = ctx.World("planet")
	assert.InDelta(t, 15, mat4.TranslationOf(planet).Len(), 1e-3)
	assert.Equal(t, 90, ctx.Steps())
}

func TestPropellerMatchesClosedForm(t *testing.T) {
	ctx, err := Build("propeller")
	require.NoError(t, err)

	for step := 0; step < 40; step++ {
		require.NoError(t, ctx.Step())
	}
	o := float64(mgl32.DegToRad(40))
	want := mat4.Chain(
		mat4.Translation(float32(0.75*math.Cos(o)), float32(0.75*math.Sin(o)), 0),
		mat4.RotationZ(-4*40),
		mat4.Scale(0.5, 3, 1),
	)
	got, err := ctx.World("blade")
	require.NoError(t, err)
	assert.InDeltaSlice(t, want[:], got[:], 1e-4)
}
