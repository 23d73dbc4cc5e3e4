// Package eks implements the cluster handle against an existing EKS-style
// cluster: manifests go through Server-Side Apply, charts through the Helm
// SDK, and federated roles through IAM with the cluster's OIDC provider as
// the trusted principal.
package eks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/go-logr/logr"

	"github.com/homelab-ops/eklab/internal/cluster"
	"github.com/homelab-ops/eklab/internal/helm"
	"github.com/homelab-ops/eklab/internal/k8s"
)

// inlinePolicyName is the name under which caller-supplied statements are
// attached to a federated role.
const inlinePolicyName = "eklab-inline"

// Options configures a handle for one existing cluster.
type Options struct {
	// ClusterName is the EKS cluster name used for OIDC discovery.
	ClusterName string

	// Region is the AWS region hosting the cluster.
	Region string

	// Kubeconfig holds the kubeconfig bytes for the cluster.
	Kubeconfig []byte

	// Log receives handle progress. Defaults to logr.Discard.
	Log logr.Logger
}

// Handle is the EKS-backed cluster capability.
type Handle struct {
	oidc       cluster.OIDCProvider
	iamClient  *iam.Client
	k8sClient  *k8s.Client
	kubeconfig []byte
	log        logr.Logger
}

var _ cluster.Handle = (*Handle)(nil)

// New discovers the cluster's OIDC identity and prepares the AWS and
// Kubernetes clients.
func New(ctx context.Context, opts Options) (*Handle, error) {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	describe, err := awseks.NewFromConfig(awsCfg).DescribeCluster(ctx, &awseks.DescribeClusterInput{
		Name: aws.String(opts.ClusterName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster %q: %w", opts.ClusterName, err)
	}
	if describe.Cluster.Identity == nil || describe.Cluster.Identity.Oidc == nil {
		return nil, fmt.Errorf("cluster %q has no OIDC identity provider", opts.ClusterName)
	}
	issuer := aws.ToString(describe.Cluster.Identity.Oidc.Issuer)

	identity, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	k8sClient, err := k8s.NewFromKubeconfig(opts.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return &Handle{
		oidc: cluster.OIDCProvider{
			IssuerURL: issuer,
			ARN:       providerARN(aws.ToString(identity.Account), issuer),
		},
		iamClient:  iam.NewFromConfig(awsCfg),
		k8sClient:  k8sClient,
		kubeconfig: opts.Kubeconfig,
		log:        log,
	}, nil
}

// OIDCProvider returns the cluster's identity provider reference.
func (h *Handle) OIDCProvider() cluster.OIDCProvider {
	return h.oidc
}

// ApplyManifest submits a structured manifest via Server-Side Apply.
func (h *Handle) ApplyManifest(ctx context.Context, id string, doc map[string]any) (cluster.ManifestHandle, error) {
	applied, err := h.k8sClient.ApplyDocument(ctx, doc)
	if err != nil {
		return cluster.ManifestHandle{}, err
	}

	h.log.V(1).Info("manifest applied", "id", id, "kind", applied.GetKind(), "name", applied.GetName())
	return cluster.ManifestHandle{
		ID:   id,
		Kind: applied.GetKind(),
		Name: applied.GetName(),
	}, nil
}

// InstallHelmChart installs or upgrades a release in the requested
// namespace.
func (h *Handle) InstallHelmChart(ctx context.Context, id string, req cluster.ChartRequest) (cluster.ReleaseHandle, error) {
	client, err := helm.NewClient(h.kubeconfig, req.Namespace)
	if err != nil {
		return cluster.ReleaseHandle{}, fmt.Errorf("failed to create helm client: %w", err)
	}

	rel, err := client.InstallOrUpgrade(ctx, helm.InstallSpec{
		ReleaseName:     req.ReleaseName,
		Repository:      req.Repository,
		Chart:           req.Chart,
		Version:         req.Version,
		Values:          req.Values,
		CreateNamespace: req.CreateNamespace,
	})
	if err != nil {
		return cluster.ReleaseHandle{}, err
	}

	h.log.V(1).Info("release installed", "id", id, "release", rel.Name, "namespace", rel.Namespace)
	return cluster.ReleaseHandle{
		ID:          id,
		ReleaseName: rel.Name,
		Namespace:   rel.Namespace,
	}, nil
}

// CreateFederatedRole creates (or reuses) an IAM role trusted for the
// requested subject and audience, then attaches the caller's statements as
// an inline policy.
func (h *Handle) CreateFederatedRole(ctx context.Context, req cluster.RoleRequest) (cluster.RoleHandle, error) {
	trust, err := trustPolicy(h.oidc, req.Subject, req.Audience)
	if err != nil {
		return cluster.RoleHandle{}, err
	}

	tags := make([]iamtypes.Tag, 0, len(req.Tags))
	for k, v := range req.Tags {
		tags = append(tags, iamtypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}

	var roleARN string
	created, err := h.iamClient.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(req.Name),
		AssumeRolePolicyDocument: aws.String(trust),
		Description:              aws.String(fmt.Sprintf("Federated role for %s", req.Subject)),
		Tags:                     tags,
	})
	switch {
	case err == nil:
		roleARN = aws.ToString(created.Role.Arn)
	case isAlreadyExists(err):
		// Deterministic naming makes re-runs land on the same role.
		existing, getErr := h.iamClient.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(req.Name)})
		if getErr != nil {
			return cluster.RoleHandle{}, fmt.Errorf("failed to look up existing role %q: %w", req.Name, getErr)
		}
		roleARN = aws.ToString(existing.Role.Arn)
	default:
		return cluster.RoleHandle{}, fmt.Errorf("failed to create role %q: %w", req.Name, err)
	}

	if len(req.PolicyStatements) > 0 {
		policy, err := json.Marshal(map[string]any{
			"Version":   "2012-10-17",
			"Statement": req.PolicyStatements,
		})
		if err != nil {
			return cluster.RoleHandle{}, fmt.Errorf("failed to marshal policy for role %q: %w", req.Name, err)
		}
		_, err = h.iamClient.PutRolePolicy(ctx, &iam.PutRolePolicyInput{
			RoleName:       aws.String(req.Name),
			PolicyName:     aws.String(inlinePolicyName),
			PolicyDocument: aws.String(string(policy)),
		})
		if err != nil {
			return cluster.RoleHandle{}, fmt.Errorf("failed to attach policy to role %q: %w", req.Name, err)
		}
	}

	h.log.V(1).Info("federated role ready", "role", req.Name, "subject", req.Subject)
	return cluster.RoleHandle{Name: req.Name, ARN: roleARN}, nil
}

// isAlreadyExists checks if the error reports an IAM entity that already
// exists.
func isAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	// Check for the typed IAM error first
	var exists *iamtypes.EntityAlreadyExistsException
	if errors.As(err, &exists) {
		return true
	}

	// Fall back to API error code checking for responses that do not
	// carry the exact SDK error type
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "EntityAlreadyExists"
	}

	return false
}
