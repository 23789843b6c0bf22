// Command smoke probes a running HirePulse instance and reports per-endpoint
// status and latency. Intended for post-deploy checks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/health", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/metrics", Expect: http.StatusOK},
	{Method: http.MethodGet, Path: "/api/v1/board/jobs", Expect: http.StatusOK},
	{Method: http.MethodGet, Path: "/api/v1/applications", Expect: http.StatusUnauthorized},
}

func main() {
	var (
		base        string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file overriding the defaults")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	criticalFailures := 0

	for _, tgt := range targets {
		req, err := http.NewRequest(tgt.Method, base+tgt.Path, nil)
		if err != nil {
			log.Fatalf("bad target %s %s: %v", tgt.Method, tgt.Path, err)
		}

		start := time.Now()
		resp, err := client.Do(req)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("FAIL %-6s %-40s unreachable: %v\n", tgt.Method, tgt.Path, err)
			if tgt.Critical {
				criticalFailures++
			}
			continue
		}
		resp.Body.Close() //nolint:errcheck

		expect := tgt.Expect
		if expect == 0 {
			expect = http.StatusOK
		}
		verdict := "ok"
		if resp.StatusCode != expect {
			verdict = fmt.Sprintf("want %d got %d", expect, resp.StatusCode)
			if tgt.Critical {
				criticalFailures++
			}
		}
		fmt.Printf("%-4s %-6s %-40s %s (%s)\n", statusLabel(resp.StatusCode == expect), tgt.Method, tgt.Path, verdict, elapsed.Round(time.Millisecond))
	}

	if criticalFailures > 0 {
		fmt.Printf("\n%d critical check(s) failed\n", criticalFailures)
		os.Exit(1)
	}
}

func statusLabel(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func loadTargets(path string) ([]target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var targets []target
	if err := json.Unmarshal(raw, &targets); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("targets file %s is empty", path)
	}
	return targets, nil
}
