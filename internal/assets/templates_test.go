package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutlineTemplate(t *testing.T) {
	tests := []struct {
		name         string
		templatePath string

		wantTemplateName string
		data             OutlineTemplate
		want             string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				tmpDir := t.TempDir()
				templatePath := filepath.Join(tmpDir, "custom.md.go.tmpl")
				content := `{{ .Title }}:{{ range .Scenes }} {{ .Order }}={{ .Text }}{{ end }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			}(t),
			wantTemplateName: "custom.md.go.tmpl",
			data: OutlineTemplate{
				Title:  "Outline",
				Scenes: []OutlineScene{{Order: 1, Text: "Opening"}},
			},
			want: "Outline: 1=Opening",
		},
		{
			name:             "uses embedded template when file doesn't exist",
			templatePath:     "/non/existent/invalid.md.go.tmpl",
			wantTemplateName: "outline.md.go.tmpl",
			data: OutlineTemplate{
				Title: "Novel Plot Outline",
				Scenes: []OutlineScene{
					{Order: 1, Subplot: "Main Plot", Text: "Opening", Intensity: 5, Notes: []string{"a", "b"}},
					{Order: 2, Subplot: "Romance", Text: "Meet | cute", Intensity: 7},
				},
			},
			want: "# Novel Plot Outline\n\n" +
				"| # | Subplot | Scene Description | Intensity | Notes |\n" +
				"|---|---------|-------------------|-----------|-------|\n" +
				"| 1 | Main Plot | Opening | 5 | a; b |\n" +
				"| 2 | Romance | Meet \\| cute | 7 |  |\n",
		},
		{
			name:             "uses embedded template when path is empty",
			wantTemplateName: "outline.md.go.tmpl",
			data:             OutlineTemplate{Title: "Novel Plot Outline"},
			want:             "# Novel Plot Outline\n\n_The thread is empty._\n",
		},
		{
			name: "falls back when the file fails to parse",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte("{{ .Title "), 0644))
				return templatePath
			}(t),
			wantTemplateName: "outline.md.go.tmpl",
			data:             OutlineTemplate{Title: "T"},
			want:             "# T\n\n_The thread is empty._\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseOutlineTemplate(tt.templatePath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, tmpl.Name())

			var buf bytes.Buffer
			require.NoError(t, WriteOutline(&buf, tmpl, tt.data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEscapeTableCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Opening", want: "Opening"},
		{name: "pipe", in: "a|b", want: `a\|b`},
		{name: "backslash", in: `a\b`, want: `a\\b`},
		{name: "newlines", in: "a\nb\r\nc", want: "a<br>b<br>c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeTableCell(tt.in))
		})
	}
}
