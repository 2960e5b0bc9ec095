package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/awata/permgen/internal/entities"
	"gopkg.in/yaml.v3"
)

// manifest mirrors the YAML document shape
type manifest struct {
	Modules []struct {
		Name        string `yaml:"name"`
		DisplayName string `yaml:"displayName"`
		Permissions []struct {
			Member      string `yaml:"member"`
			Description string `yaml:"description"`
			Region      string `yaml:"region"`
		} `yaml:"permissions"`
	} `yaml:"modules"`
	Aggregates []struct {
		Name        string   `yaml:"name"`
		DisplayName string   `yaml:"displayName"`
		Refs        []string `yaml:"refs"` // "Module.Member"
	} `yaml:"aggregates"`
}

// LoadYAML reads a YAML permission manifest into a registry
func LoadYAML(path string) (*entities.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses YAML manifest content into a registry. Document order
// defines the discovery order used for emission.
func ParseYAML(data []byte) (*entities.Registry, error) {
	var doc manifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	registry := entities.NewRegistry()

	for _, m := range doc.Modules {
		module := &entities.PermissionModule{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Entries:     make([]*entities.PermissionEntry, 0, len(m.Permissions)),
		}
		if module.DisplayName == "" {
			module.DisplayName = m.Name
		}
		for _, p := range m.Permissions {
			module.Entries = append(module.Entries, &entities.PermissionEntry{
				MemberName:  p.Member,
				Description: p.Description,
				RegionLabel: p.Region,
			})
		}
		registry.AddModule(module)
	}

	for _, a := range doc.Aggregates {
		aggregate := &entities.AggregateModule{
			Name:        a.Name,
			DisplayName: a.DisplayName,
			Refs:        make([]*entities.AggregateRef, 0, len(a.Refs)),
		}
		if aggregate.DisplayName == "" {
			aggregate.DisplayName = a.Name
		}
		for _, ref := range a.Refs {
			module, member, ok := strings.Cut(ref, ".")
			if !ok || module == "" || member == "" {
				return nil, fmt.Errorf("aggregate %s: ref %q must have the form Module.Member", a.Name, ref)
			}
			aggregate.Refs = append(aggregate.Refs, &entities.AggregateRef{
				Module: module,
				Member: member,
			})
		}
		registry.AddAggregate(aggregate)
	}

	return registry, nil
}
