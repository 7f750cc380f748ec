// Package catalog holds the hand-authored narratives attached to each (group, cluster)
// pair. The text is illustrative copy written by analysts; some entries describe
// suspected data-entry anomalies and are not validated against the numbers.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var embedded []byte

type Definition struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Actions     []string `yaml:"actions" json:"actions"`
}

type file struct {
	Groups []struct {
		Name     string `yaml:"name"`
		Clusters []struct {
			ID         int `yaml:"id"`
			Definition `yaml:",inline"`
		} `yaml:"clusters"`
	} `yaml:"groups"`
	Default Definition `yaml:"default"`
}

type key struct {
	group   string
	cluster int
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	entries  map[key]Definition
	groups   []string
	fallback Definition
}

var placeholder = Definition{
	Title:       "Análise Pendente",
	Description: "Cluster sem classificação específica.",
	Actions: []string{
		"Analisar perfil de consumo",
		"Categorizar manualmente",
		"Definir política de estoque",
	},
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded definitions are invalid: %v", err))
	}
	return c
}

// Load reads a YAML override from path, or returns the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cluster catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cluster catalog: %w", err)
	}

	c := &Catalog{entries: make(map[key]Definition), fallback: f.Default}
	if c.fallback.Title == "" {
		c.fallback = placeholder
	}
	for _, g := range f.Groups {
		if g.Name == "" {
			return nil, errors.New("parse cluster catalog: group without name")
		}
		c.groups = append(c.groups, g.Name)
		for _, cl := range g.Clusters {
			k := key{group: g.Name, cluster: cl.ID}
			if _, dup := c.entries[k]; dup {
				return nil, fmt.Errorf("parse cluster catalog: duplicate cluster %d in %q", cl.ID, g.Name)
			}
			c.entries[k] = cl.Definition
		}
	}
	sort.Strings(c.groups)
	return c, nil
}

// Lookup never fails: unknown groups or cluster ids get the default definition.
func (c *Catalog) Lookup(group string, clusterID int) Definition {
	if d, ok := c.entries[key{group: group, cluster: clusterID}]; ok {
		return d
	}
	return c.fallback
}

// Has reports whether an explicit entry exists for the pair.
func (c *Catalog) Has(group string, clusterID int) bool {
	_, ok := c.entries[key{group: group, cluster: clusterID}]
	return ok
}

func (c *Catalog) Groups() []string {
	out := make([]string, len(c.groups))
	copy(out, c.groups)
	return out
}

func (c *Catalog) DefaultDefinition() Definition {
	return c.fallback
}
