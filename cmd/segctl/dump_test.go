package main

import (
	"encoding/json"
	"testing"
)

const fragmentTrace = `a 0 100
a 1 100
a 2 100
f 1
`

func TestDumpCommand(t *testing.T) {
	tests := []struct {
		name        string
		json        bool
		free        bool
		limit       int
		wantContain []string
	}{
		{
			name:        "all blocks",
			wantContain: []string{"addr", "alloc", "free", "Free lists:"},
		},
		{
			name:        "free only",
			free:        true,
			wantContain: []string{"free"},
		},
		{
			name:        "json",
			json:        true,
			wantContain: []string{`"blocks"`, `"lists"`, `"heap_size"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json
			dumpFreeOnly = tt.free
			dumpLimit = tt.limit

			args := []string{writeTrace(t, "frag.rep", fragmentTrace)}
			output, err := captureOutput(t, func() error {
				return runDump(args)
			})
			if err != nil {
				t.Fatalf("runDump: %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestDumpCommand_Blocks(t *testing.T) {
	resetFlags()
	jsonOut = true

	args := []string{writeTrace(t, "frag.rep", fragmentTrace)}
	output, err := captureOutput(t, func() error {
		return runDump(args)
	})
	if err != nil {
		t.Fatalf("runDump: %v", err)
	}

	var report DumpReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 100 bytes adjusts to 128-byte blocks: alloc, free (id 1), alloc, then
	// the rest of the first chunk.
	if len(report.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4: %+v", len(report.Blocks), report.Blocks)
	}
	want := []DumpBlock{
		{Addr: 48, Size: 128, Alloc: true, PrevAlloc: true},
		{Addr: 176, Size: 128, Alloc: false, PrevAlloc: true},
		{Addr: 304, Size: 128, Alloc: true, PrevAlloc: false},
	}
	for i, w := range want {
		if report.Blocks[i] != w {
			t.Errorf("block %d = %+v, want %+v", i, report.Blocks[i], w)
		}
	}
	if report.Blocks[3].Alloc {
		t.Errorf("trailing block should be free")
	}
	if len(report.Lists) != 15 {
		t.Fatalf("got %d lists", len(report.Lists))
	}
	total := 0
	for _, n := range report.Lists {
		total += n
	}
	if total != 2 {
		t.Errorf("free list total = %d, want 2", total)
	}
}

func TestDumpCommand_Limit(t *testing.T) {
	resetFlags()
	jsonOut = true
	dumpLimit = 2

	args := []string{writeTrace(t, "frag.rep", fragmentTrace)}
	output, err := captureOutput(t, func() error {
		return runDump(args)
	})
	if err != nil {
		t.Fatalf("runDump: %v", err)
	}
	var report DumpReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Blocks) != 2 {
		t.Errorf("got %d blocks, want 2", len(report.Blocks))
	}
}
