package scan

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/murogrande/docdrift"
)

// Nav is the parsed navigation manifest of a documentation site.
type Nav struct {
	paths []docdrift.NavPath
	set   map[string]struct{}
}

// LoadNav parses the nav tree of a YAML manifest (e.g. mkdocs.yml),
// collecting every referenced file path. A missing manifest or a manifest
// without a nav key yields a nil Nav and no error.
func LoadNav(manifestPath string) (*Nav, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var doc struct {
		Nav yaml.Node `yaml:"nav"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, docdrift.Errorf(docdrift.EINVALID, "could not parse %s: %v", manifestPath, err)
	}
	if doc.Nav.Kind == 0 {
		return nil, nil
	}

	nav := &Nav{set: make(map[string]struct{})}
	collectNavPaths(&doc.Nav, manifestPath, nav)
	return nav, nil
}

// collectNavPaths walks the nav node recursively. Scalar leaves are file
// paths; mapping values and sequence items are descended into, matching
// the manifest's section/page structure.
func collectNavPaths(node *yaml.Node, manifestPath string, nav *Nav) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return
		}
		nav.paths = append(nav.paths, docdrift.NavPath{Path: node.Value, File: manifestPath})
		nav.set[node.Value] = struct{}{}
	case yaml.MappingNode:
		// Content alternates key, value; only values carry paths.
		for i := 1; i < len(node.Content); i += 2 {
			collectNavPaths(node.Content[i], manifestPath, nav)
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			collectNavPaths(item, manifestPath, nav)
		}
	case yaml.DocumentNode, yaml.AliasNode:
		for _, item := range node.Content {
			collectNavPaths(item, manifestPath, nav)
		}
	}
}

// Paths returns every file path referenced by the nav tree, in document
// order.
func (n *Nav) Paths() []docdrift.NavPath {
	if n == nil {
		return nil
	}
	return n.paths
}

// Contains reports whether the nav tree references the given docs-root
// relative path.
func (n *Nav) Contains(rel string) bool {
	if n == nil {
		return false
	}
	_, ok := n.set[rel]
	return ok
}
