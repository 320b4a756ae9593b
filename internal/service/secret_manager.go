package service

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

type SecretManagerService interface {
	AccessSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretManagerService struct {
	client    *secretmanager.Client
	projectID string
}

// NewSecretManagerService opens a Secret Manager client. projectID is only
// needed when secrets are referenced by short name.
func NewSecretManagerService(ctx context.Context, projectID string, opts ...option.ClientOption) (SecretManagerService, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &secretManagerService{client: client, projectID: projectID}, nil
}

// AccessSecret reads a secret version. name is either a full resource
// ("projects/p/secrets/s/versions/v") or a bare secret id, which resolves to
// its latest version in the configured project.
func (s *secretManagerService) AccessSecret(ctx context.Context, name string) (string, error) {
	resource, err := secretVersionName(s.projectID, name)
	if err != nil {
		return "", err
	}
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: resource})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (s *secretManagerService) Close() error {
	return s.client.Close()
}

func secretVersionName(projectID, name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("secret name is empty")
	case strings.HasPrefix(name, "projects/") && strings.Contains(name, "/versions/"):
		return name, nil
	case strings.HasPrefix(name, "projects/"):
		return name + "/versions/latest", nil
	case projectID == "":
		return "", fmt.Errorf("GCP project ID is required to resolve secret %q", name)
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name), nil
}
