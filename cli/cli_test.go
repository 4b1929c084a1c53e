package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCliRun(t *testing.T) {
	f, err := os.Open("test.yaml")
	require.NoError(t, err)
	defer f.Close()

	var testCases []struct {
		Name     string
		Args     []string
		Input    string
		Expected string
		Error    string
		ExitCode int `yaml:"exit_code"`
	}
	require.NoError(t, yaml.NewDecoder(f).Decode(&testCases))

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			defer func() { assert.Nil(t, recover()) }()
			var outStream, errStream strings.Builder
			cli := cli{
				inStream:  strings.NewReader(tc.Input),
				outStream: &outStream,
				errStream: &errStream,
			}
			code := cli.run(tc.Args)
			if tc.Error == "" {
				assert.Equal(t, tc.ExitCode, code)
				assert.Equal(t, tc.Expected, outStream.String())
				assert.Equal(t, "", errStream.String())
			} else {
				assert.Equal(t, tc.ExitCode, code)
				assert.Contains(t, errStream.String(), tc.Error)
			}
		})
	}
}

func TestCliRunFromFile(t *testing.T) {
	fname := t.TempDir() + "/prog.json"
	require.NoError(t, os.WriteFile(fname, []byte(`{"stack":[],"entrypoint":[1,2,{".":"add_two_top"}]}`), 0o644))
	var outStream, errStream strings.Builder
	cli := cli{
		inStream:  strings.NewReader(""),
		outStream: &outStream,
		errStream: &errStream,
	}
	code := cli.run([]string{"-c", fname})
	assert.Equal(t, exitCodeOK, code)
	assert.Equal(t, `{"call_stack":[],"entrypoint":[1,2,{".":"add_two_top"}],"ref":1,"stack":[3]}`+"\n", outStream.String())
	assert.Equal(t, "", errStream.String())
}

func TestCliVersion(t *testing.T) {
	var outStream strings.Builder
	cli := cli{
		inStream:  strings.NewReader(""),
		outStream: &outStream,
		errStream: &strings.Builder{},
	}
	code := cli.run([]string{"-v"})
	assert.Equal(t, exitCodeOK, code)
	assert.True(t, strings.HasPrefix(outStream.String(), name+" "+version))
}
