package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

// ApplyDocument applies a single structured manifest document using
// Server-Side Apply and returns the applied object.
func (c *Client) ApplyDocument(ctx context.Context, doc map[string]any) (*unstructured.Unstructured, error) {
	obj := &unstructured.Unstructured{Object: doc}

	gvk := obj.GroupVersionKind()
	if gvk.Kind == "" {
		return nil, fmt.Errorf("manifest document has no kind set")
	}

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to get REST mapping for %v: %w", gvk, err)
	}

	resource := c.dynamicClient.Resource(mapping.Resource)
	var applied *unstructured.Unstructured

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	patchOptions := metav1.PatchOptions{FieldManager: FieldManager, Force: ptr(true)}
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		applied, err = resource.Namespace(obj.GetNamespace()).
			Patch(ctx, obj.GetName(), types.ApplyPatchType, data, patchOptions)
	} else {
		applied, err = resource.Patch(ctx, obj.GetName(), types.ApplyPatchType, data, patchOptions)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s %q: %w", gvk.Kind, obj.GetName(), err)
	}

	return applied, nil
}

func ptr[T any](v T) *T { return &v }
