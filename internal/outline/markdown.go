package outline

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/storybuilder/internal/assets"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

// WriteMarkdown renders scenes with the outline template at templatePath, or
// the embedded one when templatePath is empty.
func WriteMarkdown(w io.Writer, scenes []project.Scene, templatePath string) error {
	tmpl, err := assets.ParseOutlineTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("assets.ParseOutlineTemplate(%s) > %w", templatePath, err)
	}

	data := assets.OutlineTemplate{
		Title:  Title,
		Scenes: make([]assets.OutlineScene, 0, len(scenes)),
	}
	for _, sc := range scenes {
		data.Scenes = append(data.Scenes, assets.OutlineScene{
			Order:     sc.Position,
			Subplot:   sc.SubplotName,
			Color:     sc.SubplotColor,
			Text:      sc.Node.Text,
			Intensity: sc.Node.Intensity,
			Notes:     sc.Node.NoteTexts(),
		})
	}
	if err := assets.WriteOutline(w, tmpl, data); err != nil {
		return fmt.Errorf("assets.WriteOutline() > %w", err)
	}
	return nil
}
