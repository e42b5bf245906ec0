package outline

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/at-ishikawa/storybuilder/internal/project"
)

// WriteCSV writes one row per scene under the Order,Subplot,Description,Intensity,Notes header.
func WriteCSV(w io.Writer, scenes []project.Scene) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cw.Write() > %w", err)
	}
	for _, sc := range scenes {
		if err := cw.Write(row(sc)); err != nil {
			return fmt.Errorf("cw.Write() > %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cw.Flush() > %w", err)
	}
	return nil
}
