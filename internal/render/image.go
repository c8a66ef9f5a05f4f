package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxImageBytes = 10 << 20

var imageTmpl = template.Must(template.New("image").Parse(
	`<div class="diagram diagram-image"><img src="{{.}}" alt="Generated UML Diagram"></div>`))

// Image asks a remote service such as mermaid.ink to draw the script.
type Image struct {
	client   *http.Client
	baseURL  string
	maxBytes int64
}

func NewImage(client *http.Client, baseURL string) *Image {
	if client == nil {
		client = http.DefaultClient
	}
	return &Image{
		client:   client,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxBytes: maxImageBytes,
	}
}

func (i *Image) Name() string { return "image" }

func (i *Image) Render(ctx context.Context, script string) (template.HTML, error) {
	endpoint := i.baseURL + "/" + url.PathEscape(script)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image service bad status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("image service returned %q, not an image", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, i.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(body)) > i.maxBytes {
		return "", fmt.Errorf("image larger than %d bytes", i.maxBytes)
	}

	mediaType, _, _ := strings.Cut(contentType, ";")
	src := template.URL("data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(body))

	var buf bytes.Buffer
	if err := imageTmpl.Execute(&buf, src); err != nil {
		return "", fmt.Errorf("failed to execute image template: %w", err)
	}
	return template.HTML(buf.String()), nil
}
