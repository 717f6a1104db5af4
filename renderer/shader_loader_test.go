package renderer

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iso_gl/assets"
)

const brokenVertex = `#version 100
attribute vec4 Position;
void mian(void) {
    gl_Position = Position;
}
`

const noColorVertex = `#version 100
attribute vec4 Position;
uniform mat4 Projection;
void main(void) {
    gl_Position = Projection * Position;
}
`

func embeddedSource() ShaderSource {
	return FSSource{FS: assets.Shaders, Label: "embedded"}
}

func mapSource(vertex, fragment string) ShaderSource {
	frag, _ := fs.ReadFile(assets.Shaders, "SimpleFragment.glsl")
	if fragment != "" {
		frag = []byte(fragment)
	}
	return FSSource{FS: fstest.MapFS{
		"SimpleVertex.glsl":   {Data: []byte(vertex)},
		"SimpleFragment.glsl": {Data: frag},
	}, Label: "test"}
}

func TestBootstrapResolvesBindings(t *testing.T) {
	f := newFakeGL()
	sp, err := Bootstrap(f, embeddedSource(), DefaultProgramOptions())
	require.NoError(t, err)

	assert.True(t, attribValid(sp.PositionSlot))
	assert.True(t, attribValid(sp.ColorSlot))
	assert.GreaterOrEqual(t, sp.ProjectionUniform.Value, int32(0))
	assert.NotEqual(t, sp.PositionSlot, sp.ColorSlot)

	assert.Equal(t, sp.Program, f.current, "program must be current after bootstrap")
	assert.True(t, f.enabled[sp.PositionSlot.Value])
	assert.True(t, f.enabled[sp.ColorSlot.Value])
	assert.Len(t, f.deletedShaders, 2, "both stages are flagged for deletion after link")
}

func TestCompileErrorCarriesDriverLog(t *testing.T) {
	f := newFakeGL()
	_, err := Bootstrap(f, mapSource(brokenVertex, ""), DefaultProgramOptions())

	var ce *CompileError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, VertexStage, ce.Stage)
	assert.Equal(t, "SimpleVertex", ce.Name)
	assert.NotEmpty(t, ce.Log)
	assert.Contains(t, err.Error(), "syntax error")
	assert.Empty(t, f.attached, "no program is created for a broken stage")
}

func TestFragmentCompileErrorReleasesVertexStage(t *testing.T) {
	f := newFakeGL()
	src, _ := fs.ReadFile(assets.Shaders, "SimpleVertex.glsl")
	_, err := Bootstrap(f, mapSource(string(src), "void mian() {}"), DefaultProgramOptions())

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, FragmentStage, ce.Stage)
	assert.Len(t, f.deletedShaders, 2, "broken fragment and compiled vertex shader")
}

func TestMissingShaderResource(t *testing.T) {
	opts := DefaultProgramOptions()
	opts.Vertex = "NoSuchShader"
	_, err := Bootstrap(newFakeGL(), embeddedSource(), opts)

	var nf *ShaderNotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, "NoSuchShader", nf.Name)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLinkErrorCarriesLog(t *testing.T) {
	f := newFakeGL()
	f.failLink = true
	f.linkLog = "ERROR: Varying DestinationColor not written by vertex shader"
	_, err := Bootstrap(f, embeddedSource(), DefaultProgramOptions())

	var le *LinkError
	require.True(t, errors.As(err, &le), "got %v", err)
	assert.Equal(t, f.linkLog, le.Log)
	assert.Len(t, f.deletedPrograms, 1)
}

func TestLinkErrorWithEmptyLog(t *testing.T) {
	f := newFakeGL()
	f.failLink = true
	_, err := Bootstrap(f, embeddedSource(), DefaultProgramOptions())

	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.NotEmpty(t, le.Log)
}

func TestShaderObjectUnavailable(t *testing.T) {
	f := newFakeGL()
	f.noShaderObj = true
	_, err := Bootstrap(f, embeddedSource(), DefaultProgramOptions())
	var ce *CompileError
	assert.True(t, errors.As(err, &ce))
}

func TestStrictBindings(t *testing.T) {
	f := newFakeGL()
	_, err := Bootstrap(f, mapSource(noColorVertex, ""), DefaultProgramOptions())

	var be *BindingError
	require.True(t, errors.As(err, &be), "got %v", err)
	assert.Equal(t, "SourceColor", be.Name)
	assert.Equal(t, "attribute", be.Kind)
	assert.Len(t, f.deletedPrograms, 1, "program is released when bindings fail")
}

func TestLenientBindings(t *testing.T) {
	f := newFakeGL()
	opts := DefaultProgramOptions()
	opts.Strict = false
	sp, err := Bootstrap(f, mapSource(noColorVertex, ""), opts)
	require.NoError(t, err)

	assert.True(t, attribValid(sp.PositionSlot))
	assert.False(t, attribValid(sp.ColorSlot))
	assert.Len(t, f.enabled, 1, "only the resolved attribute is enabled")
}

func TestShaderStageString(t *testing.T) {
	assert.Equal(t, "vertex", VertexStage.String())
	assert.Equal(t, "fragment", FragmentStage.String())
	assert.Equal(t, "unknown", ShaderStage(0).String())
}
