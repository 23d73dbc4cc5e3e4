package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "ServiceAccountRole",
			got:      ServiceAccountRole("prod", "external-dns"),
			expected: "eklab-prod-sa-external-dns",
		},
		{
			name:     "Release",
			got:      Release("cert-manager", "prod"),
			expected: "cert-manager-prod",
		},
		{
			name:     "NamespaceManifest",
			got:      NamespaceManifest("ingress-nginx"),
			expected: "ingress-nginx-namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}
