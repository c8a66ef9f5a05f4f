package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
	"github.com/kdduha/uml-generator/internal/logging"
	"github.com/kdduha/uml-generator/internal/models"
	"github.com/kdduha/uml-generator/internal/samples"
	"github.com/spf13/cobra"
)

var (
	defaultTemperature = 0.7
	defaultMaxTokens   = 512
	defaultEndpoint    = "http://localhost:8080/api/generate"
)

type options struct {
	endpoint    string
	strategies  []string
	repeat      int
	temperature float64
	maxTokens   int
	timeout     time.Duration
	verbose     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Send every sample description to /api/generate and report timings",
		Long: `benchmark posts each sample description once per strategy (and per repeat)
to a running server and prints a markdown table of latencies and outcomes.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(cmd.ErrOrStderr(), opts.verbose)
			client := &http.Client{Timeout: opts.timeout}

			results := run(cmd.Context(), logger, client, opts)
			printMarkdown(cmd.OutOrStdout(), opts.strategies, results)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.endpoint, "endpoint", defaultEndpoint, "generate endpoint URL")
	f.StringSliceVarP(&opts.strategies, "strategy", "s", []string{"offline"}, "strategies to benchmark")
	f.IntVarP(&opts.repeat, "repeat", "n", 1, "requests per sample and strategy")
	f.Float64Var(&opts.temperature, "temperature", defaultTemperature, "sampling temperature for remote strategies")
	f.IntVar(&opts.maxTokens, "max-tokens", defaultMaxTokens, "max tokens for remote strategies")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "per-request timeout")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every request")

	return cmd
}

func run(ctx context.Context, logger *log.Logger, client *http.Client, opts options) []BenchResult {
	var results []BenchResult
	for _, strategy := range opts.strategies {
		for _, sample := range samples.Descriptions {
			for i := 0; i < opts.repeat; i++ {
				req := models.GenerateRequest{
					Description: sample.Text,
					Strategy:    strategy,
					Generation: &models.GenerationParams{
						Temperature: &opts.temperature,
						MaxTokens:   &opts.maxTokens,
					},
				}
				res := benchmarkSample(ctx, client, opts.endpoint, sample.Name, req)

				if res.Err != nil {
					logger.Error("request failed", "sample", res.Sample, "strategy", strategy, "err", res.Err)
				} else {
					logger.Debug("ok", "sample", res.Sample, "strategy", strategy, "elapsed", res.Duration, "valid", res.Valid)
				}
				results = append(results, res)
			}
		}
	}
	return results
}

func benchmarkSample(ctx context.Context, client *http.Client, endpoint, name string, req models.GenerateRequest) BenchResult {
	start := time.Now()
	resp, err := send(ctx, client, endpoint, req)

	res := BenchResult{
		Sample:   name,
		Strategy: req.Strategy,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		return res
	}
	if resp.Error != "" {
		res.Err = fmt.Errorf("generation failed: %s", resp.Error)
		return res
	}
	res.Valid = resp.Valid
	res.Cached = resp.Cached
	res.Size = len(resp.MermaidCode)
	return res
}

func send(ctx context.Context, client *http.Client, endpoint string, req models.GenerateRequest) (*models.GenerateResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out models.GenerateResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		a := m[r.Strategy]
		if r.Err != nil {
			a.Failed++
			m[r.Strategy] = a
			continue
		}
		a.Count++
		a.Total += r.Duration
		a.TotalBytes += r.Size
		if r.Valid {
			a.Valid++
		}
		if r.Cached {
			a.Cached++
		}
		m[r.Strategy] = a
	}
	return m
}

func printMarkdown(w io.Writer, order []string, results []BenchResult) {
	fmt.Fprint(w, "\n## Benchmark Results\n\n")
	fmt.Fprintln(w, "| Strategy | Requests | Valid | Cached | Failed | Avg Time | Total Time | Avg Script Size |")
	fmt.Fprintln(w, "|----------|----------|-------|--------|--------|----------|------------|-----------------|")

	agg := aggregate(results)

	var total Agg
	for _, strategy := range order {
		a, ok := agg[strategy]
		if !ok {
			continue
		}
		printRow(w, strategy, a)

		total.Count += a.Count
		total.Valid += a.Valid
		total.Cached += a.Cached
		total.Failed += a.Failed
		total.Total += a.Total
		total.TotalBytes += a.TotalBytes
	}

	if total.Count+total.Failed > 0 {
		printRow(w, "**ALL**", total)
	}
}

func printRow(w io.Writer, label string, a Agg) {
	var avg time.Duration
	var avgSize int
	if a.Count > 0 {
		avg = a.Total / time.Duration(a.Count)
		avgSize = a.TotalBytes / a.Count
	}
	fmt.Fprintf(w, "| %s | %d | %d | %d | %d | %v | %v | %d B |\n",
		label,
		a.Count,
		a.Valid,
		a.Cached,
		a.Failed,
		avg.Round(time.Millisecond),
		a.Total.Round(time.Millisecond),
		avgSize,
	)
}
