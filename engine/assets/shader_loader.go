package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadShader reads GLSL source from assets/shaders. The result carries a
// trailing NUL so it can go straight to the GL binding's string helpers.
func LoadShader(name string) (string, error) {
	path := filepath.Join("assets", "shaders", name)
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("shader %q: %w", name, err)
	}
	if n := len(src); n == 0 || src[n-1] != 0 {
		src = append(src, 0)
	}
	return string(src), nil
}
