package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestReplayCommand(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		json        bool
		check       bool
		noVerify    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "table output",
			body:        sampleTrace,
			wantContain: []string{"trace", "util", "sample.rep", "9"},
		},
		{
			name:        "json output",
			body:        sampleTrace,
			json:        true,
			wantContain: []string{`"trace": "sample.rep"`, `"ops": 9`, `"calloc": 1`},
		},
		{
			name:        "with checker",
			body:        sampleTrace,
			check:       true,
			wantContain: []string{"sample.rep"},
		},
		{
			name:        "without payload verification",
			body:        sampleTrace,
			noVerify:    true,
			wantContain: []string{"sample.rep"},
		},
		{
			name:    "free of unknown id",
			body:    "a 0 16\nf 7\n",
			wantErr: true,
		},
		{
			name:    "syntax error",
			body:    "x 0 16\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json
			replayCheck = tt.check
			replayNoVerify = tt.noVerify

			args := []string{writeTrace(t, "sample.rep", tt.body)}
			output, err := captureOutput(t, func() error {
				return runReplay(args)
			})

			if (err != nil) != tt.wantErr {
				t.Fatalf("runReplay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestReplayCommand_MultipleTraces(t *testing.T) {
	resetFlags()
	jsonOut = true

	args := []string{
		writeTrace(t, "one.rep", sampleTrace),
		writeTrace(t, "two.rep", "a 0 4000\na 1 4000\nf 0\nf 1\n"),
	}
	output, err := captureOutput(t, func() error {
		return runReplay(args)
	})
	if err != nil {
		t.Fatalf("runReplay: %v", err)
	}

	var reports []ReplayReport
	if err := json.Unmarshal([]byte(output), &reports); err != nil {
		t.Fatalf("decode: %v\n%s", err, output)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	for _, r := range reports {
		if r.Utilization <= 0 || r.Utilization > 1 {
			t.Errorf("%s: utilization %v out of range", r.Trace, r.Utilization)
		}
		if r.PeakPayload <= 0 {
			t.Errorf("%s: no peak payload recorded", r.Trace)
		}
	}
	if reports[1].PeakPayload != 8000 {
		t.Errorf("two.rep peak = %d, want 8000", reports[1].PeakPayload)
	}
}

func TestReplayCommand_MeanRow(t *testing.T) {
	resetFlags()

	args := []string{
		writeTrace(t, "one.rep", sampleTrace),
		writeTrace(t, "two.rep", sampleTrace),
	}
	output, err := captureOutput(t, func() error {
		return runReplay(args)
	})
	if err != nil {
		t.Fatalf("runReplay: %v", err)
	}
	if !strings.Contains(output, "mean") {
		t.Errorf("expected a mean row:\n%s", output)
	}
}

func TestReplayCommand_Quiet(t *testing.T) {
	resetFlags()
	quiet = true

	args := []string{writeTrace(t, "sample.rep", sampleTrace)}
	output, err := captureOutput(t, func() error {
		return runReplay(args)
	})
	if err != nil {
		t.Fatalf("runReplay: %v", err)
	}
	if output != "" {
		t.Errorf("quiet mode printed %q", output)
	}
}
