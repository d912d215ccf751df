// Package shaders holds the GLSL programs used to draw the screens. Each
// program is a pair of embedded files, <name>.vert and <name>.frag.
package shaders

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

//go:embed *.vert *.frag
var dir embed.FS

const DefaultName = "screen"

// Names returns the names of all embedded programs.
func Names() []string {
	dirents, err := dir.ReadDir(".")
	if err != nil {
		panic(err)
	}

	var names []string
	for _, dirent := range dirents {
		name := dirent.Name()
		if dirent.IsDir() || filepath.Ext(name) != ".frag" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".frag"))
	}

	slices.Sort(names)
	return names
}

// Source returns the vertex and fragment shader sources of the named program.
func Source(name string) (vert, frag string, err error) {
	v, err := fs.ReadFile(dir, name+".vert")
	if err != nil {
		return "", "", err
	}
	f, err := fs.ReadFile(dir, name+".frag")
	if err != nil {
		return "", "", err
	}
	return string(v), string(f), nil
}

// Program compiles and links the named program. It must be called with a
// current OpenGL context.
func Program(name string) (uint32, error) {
	vsrc, fsrc, err := Source(name)
	if err != nil {
		return 0, err
	}
	vert, err := compile(vsrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("%s.vert: %w", name, err)
	}
	frag, err := compile(fsrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("%s.frag: %w", name, err)
	}
	return link(vert, frag)
}

func compile(src string, typ uint32) (uint32, error) {
	csrc, free := gl.Strs(src + "\x00")
	sh := gl.CreateShader(typ)
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	if gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status); status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)

		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(sh, logLength, nil, &log[0])
		gl.DeleteShader(sh)

		return 0, fmt.Errorf("shader compile error: %v", string(log))
	}

	return sh, nil
}

func link(vert, frag uint32) (uint32, error) {
	prg := gl.CreateProgram()
	gl.AttachShader(prg, vert)
	gl.AttachShader(prg, frag)
	gl.LinkProgram(prg)

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	if gl.GetProgramiv(prg, gl.LINK_STATUS, &status); status == gl.FALSE {
		var logLength int32
		var glLog [256]byte
		gl.GetProgramInfoLog(prg, int32(len(glLog)), &logLength, &glLog[0])
		gl.DeleteProgram(prg)
		return 0, fmt.Errorf("shader program link error: %v", string(glLog[:logLength]))
	}

	return prg, nil
}
