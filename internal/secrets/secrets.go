package secrets

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Resolver fetches sensitive configuration values by well-known name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// GoogleResolver reads secrets from Google Secret Manager. A name may be a
// full version resource name (projects/<p>/secrets/<s>/versions/<v>); bare
// names are expanded against the configured project with version "latest".
type GoogleResolver struct {
	client  *secretmanager.Client
	project string
}

func NewGoogleResolver(ctx context.Context, project string) (*GoogleResolver, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secret manager client: %w", err)
	}
	return &GoogleResolver{client: client, project: project}, nil
}

func (g *GoogleResolver) Resolve(ctx context.Context, name string) (string, error) {
	resolved := name
	if !strings.Contains(name, "/") {
		if g.project == "" {
			return "", fmt.Errorf("secret %q: bare secret name requires a project", name)
		}
		resolved = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", g.project, name)
	}

	resp, err := g.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resolved,
	})
	if err != nil {
		return "", fmt.Errorf("access secret %q: %w", name, err)
	}
	return strings.TrimSpace(string(resp.GetPayload().GetData())), nil
}

func (g *GoogleResolver) Close() error {
	return g.client.Close()
}

// Static resolves from a fixed map. Used by tests and local tooling.
type Static map[string]string

func (s Static) Resolve(_ context.Context, name string) (string, error) {
	v, ok := s[name]
	if !ok {
		return "", fmt.Errorf("secret %q not found", name)
	}
	return v, nil
}
