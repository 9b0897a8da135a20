package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/jsonv2"
)

const wireInput = "@header={{[3,client];[4,session];[1,server];[2,handler];[5,user_data];[6,1.0.0.0];}};" +
	"@data={{[count,int_value,42];[name,string_value,Alice];}};"

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRun_ConvertsStdinToV2ByDefault(t *testing.T) {
	out, _, err := runCLI(t, wireInput)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, `{"container":{"version":"2.0"`))
	require.True(t, strings.HasSuffix(out, "\n"))

	c, err := jsonv2.Default().FromV2JSON(out)
	require.NoError(t, err)
	require.Equal(t, "user_data", c.MessageType())
	require.Equal(t, "client", c.SourceID())
	require.Equal(t, 2, c.ValueCount())
}

func TestRun_FileInputAndTarget(t *testing.T) {
	path := writeFile(t, "message.txt", wireInput)

	out, _, err := runCLI(t, "", "--to", "cpp", "--pretty", path)
	require.NoError(t, err)
	require.Equal(t, format.FormatCppJSON, jsonv2.DetectFormat(out))
	require.Contains(t, out, "\n  \"header\": {")

	back, _, err := runCLI(t, out, "-t", "wire", "-")
	require.NoError(t, err)
	require.Equal(t, "@header={{[1,server];[2,handler];[3,client];[4,session];[5,user_data];[6,1.0.0.0];}};"+
		"@data={{[count,int_value,42];[name,string_value,Alice];}};\n", back)
}

func TestRun_Detect(t *testing.T) {
	out, _, err := runCLI(t, wireInput, "--detect")
	require.NoError(t, err)
	require.Equal(t, "wire\n", out)

	out, _, err = runCLI(t, "not a container", "--detect")
	require.Error(t, err)
	require.Equal(t, "unknown\n", out)
}

func TestRun_Errors(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		_, _, err := runCLI(t, wireInput, "--to", "yaml")
		require.ErrorContains(t, err, "unsupported target format")
	})

	t.Run("unrecognized input", func(t *testing.T) {
		_, _, err := runCLI(t, `{"hello":1}`)
		require.Error(t, err)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, _, err := runCLI(t, "", "a", "b")
		require.ErrorContains(t, err, "unexpected argument: b")
	})

	t.Run("missing input file", func(t *testing.T) {
		_, _, err := runCLI(t, "", filepath.Join(t.TempDir(), "absent.json"))
		require.ErrorContains(t, err, "read input")
	})

	t.Run("capacity", func(t *testing.T) {
		_, _, err := runCLI(t, wireInput, "--max-values", "1")
		require.Error(t, err)
	})

	t.Run("invalid max values", func(t *testing.T) {
		_, _, err := runCLI(t, wireInput, "--max-values", "0")
		require.Error(t, err)
	})

	t.Run("bad flag", func(t *testing.T) {
		_, _, err := runCLI(t, wireInput, "--no-such-flag")
		require.Error(t, err)
	})
}

func TestRun_Help(t *testing.T) {
	_, stderr, err := runCLI(t, "", "--help")
	require.NoError(t, err)
	require.Contains(t, stderr, "Usage: containerconv")
	require.Contains(t, stderr, "--to")
}

func TestRun_Lenient(t *testing.T) {
	doc := `{"message_type":"ping", /* note */ "values":[],}`

	_, _, err := runCLI(t, doc)
	require.Error(t, err)

	out, _, err := runCLI(t, doc, "--lenient", "--to", "python")
	require.NoError(t, err)
	require.Contains(t, out, `"message_type":"ping"`)
}

func TestRun_ConfigFileAndOverride(t *testing.T) {
	path := writeFile(t, "containerconv.toml", `
target = "wire"
log_level = "debug"
`)

	out, stderr, err := runCLI(t, `{"message_type":"ping","values":[]}`, "--config", path)
	require.NoError(t, err)
	require.Equal(t, "@header={{[5,ping];[6,1.0.0.0];}};@data={{}};\n", out)
	require.Contains(t, stderr, "detected input format")

	out, _, err = runCLI(t, `{"message_type":"ping","values":[]}`, "--config", path, "--to", "python", "--log-level", "error")
	require.NoError(t, err)
	require.Equal(t, format.FormatPythonJSON, jsonv2.DetectFormat(out))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Int("values", container.DefaultMaxValues).Msg("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "containerconv")
}
