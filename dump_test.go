package macromentor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"macromentor/nutrition"
)

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, nutrition.Macros{ProteinGrams: 112, CarbGrams: 146, FatGrams: 53})

	out := buf.String()
	assert.Contains(t, out, "dump_test.go:")
	assert.Contains(t, out, "ProteinGrams: (int) 112")
	assert.Contains(t, out, "FatGrams: (int) 53")
}
