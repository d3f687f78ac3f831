package interp

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsegab/tlang/diag"
	_ "github.com/tsegab/tlang/modules/rand"
)

type program struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
	Error  string `yaml:"error"`
}

func loadPrograms(t *testing.T) []program {
	t.Helper()
	data, err := os.ReadFile("testdata/programs.yaml")
	require.NoError(t, err)
	var progs []program
	require.NoError(t, yaml.Unmarshal(data, &progs))
	require.NotEmpty(t, progs)
	return progs
}

func TestPrograms(t *testing.T) {
	for _, p := range loadPrograms(t) {
		t.Run(p.Name, func(t *testing.T) {
			var out bytes.Buffer
			in := New(Options{Stdout: &out, Stdin: strings.NewReader(p.Stdin)})
			_, err := in.RunSource(NewEnvironment(), p.Name+".tl", p.Source)

			if p.Error == "" {
				require.NoError(t, err)
			} else {
				kind, ok := diag.ParseKind(p.Error)
				require.True(t, ok, "unknown error kind %q", p.Error)
				require.Error(t, err)
				assert.Equal(t, kind, diag.KindOf(err), "error: %v", err)
			}
			assert.Equal(t, p.Stdout, out.String())
		})
	}
}
