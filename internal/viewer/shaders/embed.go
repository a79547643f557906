// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BrickVertexShader is the vertex shader for brick rendering.
//
//go:embed brick.vert
var BrickVertexShader string

// BrickFragmentShader is the fragment shader for brick rendering.
//
//go:embed brick.frag
var BrickFragmentShader string
