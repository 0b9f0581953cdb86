package align

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/JaasperK/Bioinformatik/seq"
)

func TestEditScriptRuns(t *testing.T) {
	tests := []struct {
		rowA, rowB string
		script     string
		window     string
		applied    string
	}{
		{"GATTACA", "GAGGACA", "s2GG", "GATTACA", "GAGGACA"},
		{"GA-TT", "GACTT", "i2C", "GATT", "GACTT"},
		{"GATT", "GA-T", "d2-", "GATT", "GAT"},
		{"GGC-AAT", "GCCTA-T", "s1Ci2Td1-", "GGCAAT", "GCCTAT"},
		{"GATT", "GATT", "", "GATT", "GATT"},
	}
	for _, test := range tests {
		es := NewEditScript(Alignment{
			AlignedA: []byte(test.rowA),
			AlignedB: []byte(test.rowB),
		})
		if es.String() != test.script {
			t.Errorf("Script of %q -> %q is %q, but expected %q.",
				test.rowA, test.rowB, es.String(), test.script)
		}
		if got := es.Apply([]byte(test.window)); string(got) != test.applied {
			t.Errorf("Apply(%q) with %q is %q, but expected %q.",
				test.window, es.String(), got, test.applied)
		}

		parsed, err := ParseEditScript(test.script)
		if err != nil {
			t.Fatalf("Cannot parse %q: %s", test.script, err)
		}
		if got := parsed.Apply([]byte(test.window)); string(got) != test.applied {
			t.Errorf("Parsed %q applies to %q, but expected %q.",
				test.script, got, test.applied)
		}
	}
}

func TestParseEditScriptErrors(t *testing.T) {
	for _, script := range []string{"s", "2A", "A", "sA"} {
		if _, err := ParseEditScript(script); err == nil {
			t.Errorf("Parsing %q should fail.", script)
		}
	}
}

func TestEditScriptRebuildsAlignedWindows(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	letters := []byte("ACGT")

	randSeq := func(n int) seq.Sequence {
		rs := make([]byte, n)
		for i := range rs {
			rs[i] = letters[rng.Intn(len(letters))]
		}
		s, err := seq.New("test", seq.Nucleotide, rs)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	for trial := 0; trial < 100; trial++ {
		a := randSeq(1 + rng.Intn(30))
		b := randSeq(1 + rng.Intn(30))

		global, err := Global(a, b, editScheme)
		if err != nil {
			t.Fatal(err)
		}
		windowA := a.Bytes()[global.StartA:global.EndA]
		windowB := b.Bytes()[global.StartB:global.EndB]
		if got := NewEditScript(global).Apply(windowA); !bytes.Equal(got, windowB) {
			t.Fatalf("Global script of %q vs %q rebuilds %q, but expected %q.",
				a.Bytes(), b.Bytes(), got, windowB)
		}

		local, err := Local(a, b, editScheme)
		if err != nil {
			t.Fatal(err)
		}
		windowA = a.Bytes()[local.StartA:local.EndA]
		windowB = b.Bytes()[local.StartB:local.EndB]
		es := NewEditScript(local)
		if got := es.Apply(windowA); !bytes.Equal(got, windowB) {
			t.Fatalf("Local script of %q vs %q rebuilds %q, but expected %q.",
				a.Bytes(), b.Bytes(), got, windowB)
		}

		parsed, err := ParseEditScript(es.String())
		if err != nil {
			t.Fatal(err)
		}
		if got := parsed.Apply(windowA); !bytes.Equal(got, windowB) {
			t.Fatalf("Round tripped script %q rebuilds %q, but expected %q.",
				es.String(), got, windowB)
		}
	}
}
