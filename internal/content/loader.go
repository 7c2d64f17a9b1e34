package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"radicaltutor/internal/models"
)

var (
	// ErrCatalogNotFound is returned when the catalog file does not exist
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrCatalogCorrupt is returned when the catalog file cannot be parsed
	ErrCatalogCorrupt = errors.New("catalog corrupt")
)

// EmptyCatalog returns a catalog with no content; every id is out of range
func EmptyCatalog() *models.Catalog {
	return &models.Catalog{
		Radicals: []models.Radical{},
		Quiz:     []models.QuizQuestion{},
		Practice: []models.PracticeItem{},
	}
}

// Load reads a catalog from a JSON file, or a YAML file when the extension
// is .yaml or .yml
func Load(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a JSON catalog document
func ParseJSON(data []byte) (*models.Catalog, error) {
	catalog := EmptyCatalog()
	if err := json.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogCorrupt, err)
	}
	fillEmpty(catalog)
	return catalog, nil
}

// ParseYAML decodes a YAML catalog document. The document is passed through
// JSON so that scalars get the same Go types as submitted answers.
func ParseYAML(data []byte) (*models.Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogCorrupt, err)
	}
	doc = stringKeys(doc)
	if _, ok := doc.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrCatalogCorrupt)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogCorrupt, err)
	}
	return ParseJSON(converted)
}

// stringKeys rewrites the map[any]any that yaml.v3 produces for mappings
// with non-string keys, such as `1: 河` in correct_pairs, into
// map[string]any so the document can be marshalled as JSON.
func stringKeys(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for key, value := range node {
			out[fmt.Sprint(key)] = stringKeys(value)
		}
		return out
	case map[string]any:
		for key, value := range node {
			node[key] = stringKeys(value)
		}
		return node
	case []any:
		for i, value := range node {
			node[i] = stringKeys(value)
		}
		return node
	default:
		return v
	}
}

func fillEmpty(c *models.Catalog) {
	if c.Radicals == nil {
		c.Radicals = []models.Radical{}
	}
	if c.Quiz == nil {
		c.Quiz = []models.QuizQuestion{}
	}
	if c.Practice == nil {
		c.Practice = []models.PracticeItem{}
	}
}
