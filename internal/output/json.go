package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/strata/api/v1alpha1"
)

// JSONFormatter formats snapshots as indented JSON.
type JSONFormatter struct{}

// FormatView formats a StorageView as JSON.
func (f *JSONFormatter) FormatView(v *v1alpha1.StorageView) (string, error) {
	v1alpha1.SetDefaultTypeMeta(&v.TypeMeta, v1alpha1.StorageViewKind)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal storage view to JSON: %w", err)
	}

	return string(data) + "\n", nil
}

// FormatNode formats a single record as JSON.
func (f *JSONFormatter) FormatNode(n v1alpha1.Node) (string, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", n.NodeType(), err)
	}

	return string(data) + "\n", nil
}
