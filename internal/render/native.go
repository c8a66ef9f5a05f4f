package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Native shells out to the mermaid-cli binary.
type Native struct {
	cli   string
	theme string
}

func NewNative(cli, theme string) *Native {
	return &Native{cli: cli, theme: theme}
}

func (n *Native) Name() string { return "native" }

func (n *Native) Render(ctx context.Context, script string) (template.HTML, error) {
	bin, err := exec.LookPath(n.cli)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	dir, err := os.MkdirTemp("", "mmdc-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.mmd")
	out := filepath.Join(dir, "out.svg")
	if err := os.WriteFile(in, []byte(script), 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp input file: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-i", in, "-o", out, "-t", n.theme)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("mmdc conversion failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %w", err)
	}

	// mmdc output is trusted markup.
	return template.HTML(`<div class="diagram diagram-native">` + string(svg) + `</div>`), nil
}
