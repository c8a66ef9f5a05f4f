package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kdduha/uml-generator/internal/logging"
	"github.com/kdduha/uml-generator/internal/models"
	"github.com/kdduha/uml-generator/internal/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAndReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.GenerateRequest
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, sonic.Unmarshal(raw, &req))

		if req.Strategy == "groq" {
			http.Error(w, "request validation failed", http.StatusBadRequest)
			return
		}
		body, _ := sonic.Marshal(models.GenerateResponse{
			MermaidCode: "classDiagram\n    class A {\n    }",
			Strategy:    req.Strategy,
			Valid:       true,
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	opts := options{
		endpoint:    srv.URL,
		strategies:  []string{"offline", "groq"},
		repeat:      2,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	results := run(context.Background(), logging.Discard(), srv.Client(), opts)
	require.Len(t, results, 2*2*len(samples.Descriptions))

	agg := aggregate(results)
	assert.Equal(t, 10, agg["offline"].Count)
	assert.Equal(t, 10, agg["offline"].Valid)
	assert.Equal(t, 10, agg["groq"].Failed)

	var out bytes.Buffer
	printMarkdown(&out, opts.strategies, results)
	report := out.String()
	assert.Contains(t, report, "## Benchmark Results")
	assert.Contains(t, report, "| offline | 10 | 10 | 0 | 0 |")
	assert.Contains(t, report, "| groq | 0 | 0 | 0 | 10 |")
	assert.Contains(t, report, "| **ALL** | 10 | 10 | 0 | 10 |")
}

func TestBenchmarkSampleSurfacesGenerationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mermaid_code":"classDiagram","valid":true,"error":"transport error: groq: 401"}`))
	}))
	defer srv.Close()

	res := benchmarkSample(context.Background(), srv.Client(), srv.URL, "basic_user", models.GenerateRequest{Strategy: "groq"})
	require.Error(t, res.Err)
	assert.True(t, strings.Contains(res.Err.Error(), "401"))
}

func TestPrintRowEmpty(t *testing.T) {
	var out bytes.Buffer
	printRow(&out, "x", Agg{Failed: 1})
	assert.Equal(t, "| x | 0 | 0 | 0 | 1 | 0s | 0s | 0 B |\n", out.String())
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-s", "offline,groq", "-n", "3", "--timeout", "5s"}))

	strategies, err := cmd.Flags().GetStringSlice("strategy")
	require.NoError(t, err)
	assert.Equal(t, []string{"offline", "groq"}, strategies)

	timeout, err := cmd.Flags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}
