package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/strata/api/v1alpha1"
)

// YAMLFormatter formats snapshots as YAML.
type YAMLFormatter struct{}

// FormatView formats a StorageView as YAML.
func (f *YAMLFormatter) FormatView(v *v1alpha1.StorageView) (string, error) {
	v1alpha1.SetDefaultTypeMeta(&v.TypeMeta, v1alpha1.StorageViewKind)

	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal storage view to YAML: %w", err)
	}

	return string(data), nil
}

// FormatNode formats a single record as YAML.
func (f *YAMLFormatter) FormatNode(n v1alpha1.Node) (string, error) {
	data, err := yaml.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", n.NodeType(), err)
	}

	return string(data), nil
}
