package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		stdin    string
		expected string
	}{
		{
			name:     "washes stdin with defaults",
			stdin:    "Spam and <b><blink>eggs</blink></b>",
			expected: "Spam and <b>eggs</b>",
		},
		{
			name:     "render flag",
			args:     []string{"-render-unallowed"},
			stdin:    "<b><blink>eggs</blink></b>",
			expected: "<b>&lt;blink&gt;eggs&lt;/blink&gt;</b>",
		},
		{
			name:     "render from environment",
			env:      map[string]string{"HTMLWASH_RENDER_UNALLOWED_TAGS": "true"},
			stdin:    "<blink>eggs</blink>",
			expected: "&lt;blink&gt;eggs&lt;/blink&gt;",
		},
		{
			name:     "flag overrides environment",
			env:      map[string]string{"HTMLWASH_RENDER_UNALLOWED_TAGS": "true"},
			args:     []string{"-render-unallowed=false"},
			stdin:    "<blink>eggs</blink>",
			expected: "eggs",
		},
		{
			name: "whitelists from environment",
			env: map[string]string{
				"HTMLWASH_ALLOWED_TAGS":       "i,div",
				"HTMLWASH_ALLOWED_ATTRIBUTES": "class",
			},
			stdin:    `<b>x</b><i class="c" href="/y">y</i>`,
			expected: `x<i class="c">y</i>`,
		},
		{
			name:     "strip flag",
			args:     []string{"-strip"},
			stdin:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var stdout, stderr bytes.Buffer
			err := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout.String())
		})
	}
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.html")
	second := filepath.Join(dir, "second.html")
	require.NoError(t, os.WriteFile(first, []byte(`<a href="javascript:x()">one</a>`), 0o600))
	require.NoError(t, os.WriteFile(second, []byte(`<em>two</em>`), 0o600))

	var stdout, stderr bytes.Buffer
	err := run([]string{first, second}, strings.NewReader("ignored"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, `<a href="">one</a><em>two</em>`, stdout.String())
	assert.Contains(t, stderr.String(), "input washed")

	err = run([]string{filepath.Join(dir, "missing.html")}, nil, &stdout, &stderr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_DebugLogging(t *testing.T) {
	t.Setenv("HTMLWASH_LOG_LEVEL", "debug")
	t.Setenv("HTMLWASH_LOG_FORMAT", "json")

	var stdout, stderr bytes.Buffer
	err := run(nil, strings.NewReader("<blink>x</blink>"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "x", stdout.String())
	assert.Contains(t, stderr.String(), `"msg":"tag dropped"`)
	assert.Contains(t, stderr.String(), `"service":"htmlwash"`)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.RenderUnallowedTags)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, formatText, cfg.LogFormat)

		p := cfg.Policy()
		assert.Contains(t, p.AllowedTags, "blockquote")
		assert.Equal(t, []string{"href", "name"}, p.AllowedAttributes)
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Setenv("HTMLWASH_LOG_FORMAT", "xml")
		_, err := loadConfig()
		assert.ErrorIs(t, err, ErrInvalidLogFormat)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("HTMLWASH_LOG_LEVEL", "loud")
		_, err := loadConfig()
		assert.ErrorIs(t, err, ErrParsingConfig)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("HTMLWASH_RENDER_UNALLOWED_TAGS", "maybe")
		_, err := loadConfig()
		assert.ErrorIs(t, err, ErrParsingConfig)
	})
}
