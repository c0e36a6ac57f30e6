package glbackend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/emberengine/ember/engine/core"
)

var errNotGLEffect = errors.New("glbackend: effect was not created by this device")

// Effect implements core.Effect: a linked program with a uTransform
// matrix parameter.
type Effect struct {
	program    uint32
	uTransform int32
}

// CreateEffect compiles and links a program from GLSL sources.
func (d *Device) CreateEffect(vertSrc, fragSrc string) (core.Effect, error) {
	prog, err := makeProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	loc := gl.GetUniformLocation(prog, gl.Str("uTransform\x00"))
	return &Effect{program: prog, uTransform: loc}, nil
}

func (e *Effect) SetTransform(m [16]float32) {
	gl.UseProgram(e.program)
	if e.uTransform >= 0 {
		gl.UniformMatrix4fv(e.uTransform, 1, false, &m[0])
	}
}

func (e *Effect) Release() {
	if e.program != 0 {
		gl.DeleteProgram(e.program)
		e.program = 0
	}
}

// --- Shader utilities ---

// SpriteVertexShader is the default sprite effect vertex stage.
const SpriteVertexShader = `
#version 330 core
layout(location=0) in vec3 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
uniform mat4 uTransform;
out vec4 vColor;
out vec2 vUV;
void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uTransform * vec4(aPos, 1.0);
}
` + "\x00"

// SpriteFragmentShader is the default sprite effect fragment stage.
const SpriteFragmentShader = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
    FragColor = texture(uTex, vUV) * vColor;
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
