package pulsetest_test

import (
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/learngl/pulse"
	"github.com/oliverbestmann/learngl/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assetRoot = filepath.Join("..", "..", "assets")

func TestShippedShadersLink(t *testing.T) {
	pairs := []struct {
		vertex   string
		fragment string
		uniforms []string
	}{
		{"triangle.vert", "triangle.frag", nil},
		{"triangle.vert", "uniform.frag", []string{"ourColor"}},
		{"textured.vert", "textured.frag", []string{"texture1", "texture2", "mixValue"}},
		{"transform.vert", "mix.frag", []string{"transform", "texture1", "texture2", "mixValue"}},
		{"cubes.vert", "mix.frag", []string{"model", "view", "projection", "texture1", "texture2", "mixValue"}},
	}

	for _, pair := range pairs {
		t.Run(pair.vertex+"+"+pair.fragment, func(t *testing.T) {
			gl := pulsetest.New()
			ctx := pulse.NewContext(gl)

			program, err := pulse.LoadProgram(ctx,
				filepath.Join(assetRoot, "shaders", pair.vertex),
				filepath.Join(assetRoot, "shaders", pair.fragment),
			)
			require.NoError(t, err)

			for _, name := range pair.uniforms {
				_, err := program.Lookup(name)
				assert.NoError(t, err, name)
			}

			ctx.Release()
			assert.Zero(t, gl.LiveTotal())
			assert.Empty(t, gl.Errors)
		})
	}
}

func TestShippedTextures(t *testing.T) {
	gl := pulsetest.New()
	ctx := pulse.NewContext(gl)
	defer ctx.Release()

	container, err := pulse.LoadTexture(ctx, filepath.Join(assetRoot, "textures", "container.png"), pulse.DefaultTextureOptions)
	require.NoError(t, err)
	assert.Equal(t, 3, container.Channels())

	face, err := pulse.LoadTexture(ctx, filepath.Join(assetRoot, "textures", "awesomeface.png"), pulse.DefaultTextureOptions)
	require.NoError(t, err)
	assert.Equal(t, 4, face.Channels())
	assert.EqualValues(t, 64, face.Width())
}
