package eks

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/homelab-ops/eklab/internal/cluster"
)

// trustPolicyTpl is the assume-role document for web-identity federation.
// The subject condition pins the role to exactly one service account; the
// audience condition pins it to STS token exchange.
var trustPolicyTpl = template.Must(template.New("trust-policy").Parse(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": { "Federated": "{{ .ProviderARN }}" },
      "Action": "sts:AssumeRoleWithWebIdentity",
      "Condition": {
        "StringEquals": {
          "{{ .Issuer }}:sub": "{{ .Subject }}",
          "{{ .Issuer }}:aud": "{{ .Audience }}"
        }
      }
    }
  ]
}`))

// trustPolicy renders the federation trust document for one subject and
// audience against the cluster's OIDC provider.
func trustPolicy(provider cluster.OIDCProvider, subject, audience string) (string, error) {
	data := struct {
		ProviderARN string
		Issuer      string
		Subject     string
		Audience    string
	}{
		ProviderARN: provider.ARN,
		Issuer:      issuerHost(provider.IssuerURL),
		Subject:     subject,
		Audience:    audience,
	}

	var buf bytes.Buffer
	if err := trustPolicyTpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render trust policy: %w", err)
	}
	return buf.String(), nil
}

// issuerHost strips the scheme from an issuer URL; IAM condition keys use
// the bare host/path form.
func issuerHost(issuerURL string) string {
	return strings.TrimPrefix(issuerURL, "https://")
}

// providerARN derives the identity-provider resource name for an issuer in
// the given account.
func providerARN(accountID, issuerURL string) string {
	return fmt.Sprintf("arn:aws:iam::%s:oidc-provider/%s", accountID, issuerHost(issuerURL))
}
