// Package assets holds the shader sources shipped next to the binary. The
// same files are embedded so a build without an assets directory still runs.
package assets

import "embed"

//go:embed *.glsl
var Shaders embed.FS
