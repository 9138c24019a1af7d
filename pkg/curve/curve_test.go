package curve

import (
	"bytes"
	"go/format"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Output(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name  string
		entry Entry
		want  float32
	}{
		{name: "high full scale", entry: Entry{HighRange: true, Code: 4095}, want: 4095.0 / 4096},
		{name: "high half", entry: Entry{HighRange: true, Code: 2048}, want: 0.5},
		{name: "low zero", entry: Entry{HighRange: false, Code: 0}, want: 0},
		{name: "high zero", entry: Entry{HighRange: true, Code: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Output(p))
		})
	}

	// Low range is attenuated by the sense ratio.
	low := Entry{Code: 2048}.Output(p)
	assert.InDelta(t, 0.5/412, low, 1e-9)
}

func TestEntry_OutputOffset(t *testing.T) {
	p := DefaultParams()
	p.HighRangeOffset = 0.25

	assert.Equal(t, float32(0.75), Entry{HighRange: true, Code: 2048}.Output(p))
	assert.InDelta(t, 0.5/412, Entry{Code: 2048}.Output(p), 1e-9)
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		count  int
		first  Entry
		last   Entry
	}{
		{
			name:   "strict",
			params: DefaultParams(),
			count:  2999 + 4085,
			first:  Entry{HighRange: false, Code: 1},
			last:   Entry{HighRange: true, Code: 4095},
		},
		{
			name:   "loose",
			params: Params{SenseRatio: 412},
			count:  4095 + 4096,
			first:  Entry{HighRange: false, Code: 1},
			last:   Entry{HighRange: true, Code: 4095},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Candidates(tt.params)
			require.Len(t, c, tt.count)
			assert.Equal(t, tt.first, c[0])
			assert.Equal(t, tt.last, c[len(c)-1])
		})
	}
}

func TestCandidates_StrictFilters(t *testing.T) {
	for _, c := range Candidates(DefaultParams()) {
		if c.HighRange {
			assert.Greater(t, c.Code, uint16(10))
		} else {
			assert.Less(t, c.Code, uint16(3000))
			assert.NotZero(t, c.Code)
		}
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, float32(1), Target(Steps-1))
	assert.Equal(t, float32(1.0/16), Target(Steps/2-1))
	for i := 1; i < Steps; i++ {
		assert.Greater(t, Target(i), Target(i-1))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := DefaultParams()

	a := Generate(p)
	b := Generate(p)
	assert.Equal(t, a, b)
	assert.Equal(t, Default, a, "embedded table is stale, run go generate ./pkg/curve")
}

func TestGenerate_Monotonic(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{name: "strict", params: DefaultParams()},
		{name: "loose", params: Params{SenseRatio: 412}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Generate(tt.params)
			assert.True(t, table.Monotonic(tt.params))
		})
	}
}

func TestDefault(t *testing.T) {
	p := DefaultParams()

	assert.True(t, Default.Monotonic(p))
	assert.Equal(t, Entry{HighRange: false, Code: 1}, Default[0])
	assert.Equal(t, Entry{HighRange: true, Code: 4095}, Default[Steps-1])
	assert.Equal(t, 55, Default.LowRangeCount())

	// Every entry is close to its target.
	outs := Default.Outputs(p)
	for i := 64; i < Steps; i++ {
		assert.InDelta(t, Target(i), outs[i], 1.0/4096, "index %d", i)
	}
}

func TestLookup(t *testing.T) {
	_, ok := Default.Lookup(0)
	assert.False(t, ok)

	e, ok := Default.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, Default[0], e)

	e, ok = Default.Lookup(255)
	assert.True(t, ok)
	assert.Equal(t, Default[254], e)
}

func TestMonotonic_Detects(t *testing.T) {
	table := Default
	table[10], table[200] = table[200], table[10]
	assert.False(t, table.Monotonic(DefaultParams()))
}

func TestWriteGo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGo(&buf, "curve", "Default", &Default))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "// Code generated by curvegen; DO NOT EDIT.\n"))
	assert.Contains(t, out, "package curve\n")
	assert.Contains(t, out, "var Default = Table{\n")
	assert.Regexp(t, `\{HighRange: true, Code: 4095\},\s+// 255\n`, out)
	assert.Equal(t, Steps, strings.Count(out, "HighRange:"))

	formatted, err := format.Source(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, out, string(formatted))
}

func TestWriteGo_MatchesCheckedInTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGo(&buf, "curve", "Default", &Default))

	checkedIn, err := os.ReadFile("table_gen.go")
	require.NoError(t, err)

	want := strings.Split(string(checkedIn), "\n")
	got := strings.Split(buf.String(), "\n")
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, strings.Fields(want[i]), strings.Fields(got[i]), "line %d", i+1)
	}
}
