package eks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelab-ops/eklab/internal/cluster"
)

var testProvider = cluster.OIDCProvider{
	IssuerURL: "https://oidc.eks.eu-central-1.amazonaws.com/id/EXAMPLED539D4633E53DE1B7",
	ARN:       "arn:aws:iam::123456789012:oidc-provider/oidc.eks.eu-central-1.amazonaws.com/id/EXAMPLED539D4633E53DE1B7",
}

func TestTrustPolicyRendersValidJSON(t *testing.T) {
	doc, err := trustPolicy(testProvider, "system:serviceaccount:external-dns:external-dns", cluster.STSAudience)
	require.NoError(t, err)

	var parsed struct {
		Version   string
		Statement []struct {
			Effect    string
			Action    string
			Principal map[string]string
			Condition map[string]map[string]string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "2012-10-17", parsed.Version)
	require.Len(t, parsed.Statement, 1)
	stmt := parsed.Statement[0]
	assert.Equal(t, "Allow", stmt.Effect)
	assert.Equal(t, "sts:AssumeRoleWithWebIdentity", stmt.Action)
	assert.Equal(t, testProvider.ARN, stmt.Principal["Federated"])

	conditions := stmt.Condition["StringEquals"]
	issuer := "oidc.eks.eu-central-1.amazonaws.com/id/EXAMPLED539D4633E53DE1B7"
	assert.Equal(t, "system:serviceaccount:external-dns:external-dns", conditions[issuer+":sub"])
	assert.Equal(t, "sts.amazonaws.com", conditions[issuer+":aud"])
}

func TestIssuerHost(t *testing.T) {
	assert.Equal(t,
		"oidc.eks.eu-central-1.amazonaws.com/id/ABC",
		issuerHost("https://oidc.eks.eu-central-1.amazonaws.com/id/ABC"))

	// Already-bare issuers pass through.
	assert.Equal(t, "oidc.example.com/id/ABC", issuerHost("oidc.example.com/id/ABC"))
}

func TestProviderARN(t *testing.T) {
	got := providerARN("123456789012", "https://oidc.eks.eu-central-1.amazonaws.com/id/ABC")
	assert.Equal(t,
		"arn:aws:iam::123456789012:oidc-provider/oidc.eks.eu-central-1.amazonaws.com/id/ABC",
		got)
}
