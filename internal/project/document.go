package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/storybuilder/internal/storage"
)

// Format is the encoding of a project file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yml and .yaml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrMalformedDocument wraps every shape error reported by ParseDocument.
var ErrMalformedDocument = errors.New("malformed project document")

// Document is a full project snapshot as written by Export.
type Document struct {
	Subplots    []Subplot `json:"subplots" yaml:"subplots"`
	Nodes       []Node    `json:"nodes" yaml:"nodes"`
	ThreadOrder []string  `json:"threadOrder" yaml:"threadOrder"`
}

// ImportDocument is a possibly partial project file. A nil field was absent
// from the file and leaves the matching collection untouched on Load.
type ImportDocument struct {
	Subplots    *[]Subplot `json:"subplots,omitempty" yaml:"subplots,omitempty"`
	Nodes       *[]Node    `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	ThreadOrder *[]string  `json:"threadOrder,omitempty" yaml:"threadOrder,omitempty"`
}

// Snapshot returns the current state as a Document.
func (s *Store) Snapshot() Document {
	return Document{
		Subplots:    s.Subplots(),
		Nodes:       s.Nodes(),
		ThreadOrder: s.ThreadOrder(),
	}
}

// Export renders the project as indented JSON.
func (s *Store) Export() ([]byte, error) {
	return s.ExportAs(FormatJSON)
}

// ExportAs renders the project in the given format.
func (s *Store) ExportAs(format Format) ([]byte, error) {
	doc := s.Snapshot()
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("yaml.Encode() > %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("yaml.Close() > %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json.MarshalIndent() > %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Load replaces each collection present in doc and leaves absent ones as
// they are. Nothing is cross-checked.
func (s *Store) Load(doc ImportDocument) {
	var keys []string
	if doc.Subplots != nil {
		s.subplots = slices.Clone(*doc.Subplots)
		if s.subplots == nil {
			s.subplots = []Subplot{}
		}
		keys = append(keys, storage.SubplotsKey)
	}
	if doc.Nodes != nil {
		s.nodes = cloneNodes(*doc.Nodes)
		keys = append(keys, storage.NodesKey)
	}
	if doc.ThreadOrder != nil {
		s.threadOrder = slices.Clone(*doc.ThreadOrder)
		if s.threadOrder == nil {
			s.threadOrder = []string{}
		}
		keys = append(keys, storage.ThreadOrderKey)
	}
	s.persist(keys...)
}

// ParseDocument decodes a project file. Only the shape is checked: the top
// level must be an object, the collections must decode, and every subplot,
// node, note and thread entry must carry an id. Errors wrap ErrMalformedDocument.
func ParseDocument(data []byte, format Format) (ImportDocument, error) {
	var doc ImportDocument
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return doc, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}

	switch format {
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(trimmed, &root); err != nil {
			return doc, fmt.Errorf("%w: yaml.Unmarshal() > %w", ErrMalformedDocument, err)
		}
		if len(root.Content) != 1 || root.Content[0].Kind != yaml.MappingNode {
			return doc, fmt.Errorf("%w: top level must be a mapping", ErrMalformedDocument)
		}
		if err := root.Content[0].Decode(&doc); err != nil {
			return doc, fmt.Errorf("%w: yaml.Decode() > %w", ErrMalformedDocument, err)
		}
	case FormatJSON, "":
		if trimmed[0] != '{' {
			return doc, fmt.Errorf("%w: top level must be an object", ErrMalformedDocument)
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return doc, fmt.Errorf("%w: json.Unmarshal() > %w", ErrMalformedDocument, err)
		}
	default:
		return doc, fmt.Errorf("unsupported format %q", format)
	}

	if err := checkShape(doc); err != nil {
		return ImportDocument{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return doc, nil
}

var (
	shapeValidator  *validator.Validate
	shapeTranslator ut.Translator
)

func init() {
	shapeValidator = validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	shapeTranslator, _ = uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(shapeValidator, shapeTranslator); err != nil {
		panic(fmt.Errorf("failed to register default translations: %w", err))
	}
	shapeValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func checkShape(doc ImportDocument) error {
	var msgs []string
	collect := func(prefix string, err error) {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			msgs = append(msgs, fmt.Sprintf("%s: %v", prefix, err))
			return
		}
		for _, fe := range validationErrors {
			// Namespace is e.g. "Node.notes[0].id"; drop the type name.
			field := fe.Namespace()
			if _, rest, ok := strings.Cut(field, "."); ok {
				field = rest
			}
			msgs = append(msgs, fmt.Sprintf("%s.%s: %s", prefix, field, fe.Translate(shapeTranslator)))
		}
	}

	if doc.Subplots != nil {
		for i, sp := range *doc.Subplots {
			if err := shapeValidator.Struct(sp); err != nil {
				collect(fmt.Sprintf("subplots[%d]", i), err)
			}
		}
	}
	if doc.Nodes != nil {
		for i, n := range *doc.Nodes {
			if err := shapeValidator.Struct(n); err != nil {
				collect(fmt.Sprintf("nodes[%d]", i), err)
			}
		}
	}
	if doc.ThreadOrder != nil {
		for i, id := range *doc.ThreadOrder {
			if id == "" {
				msgs = append(msgs, fmt.Sprintf("threadOrder[%d]: node id must not be empty", i))
			}
		}
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}
