package secrets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// GCPProjectEnv is consulted when gcpProject is not configured.
const GCPProjectEnv = "GOOGLE_CLOUD_PROJECT"

const (
	gcpLoginHint   = "run `gcloud auth application-default login` and check the project's Secret Manager permissions"
	maxSecretIDLen = 255
)

type secretManagerClient interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	CreateSecret(ctx context.Context, req *secretmanagerpb.CreateSecretRequest, opts ...gax.CallOption) (*secretmanagerpb.Secret, error)
	AddSecretVersion(ctx context.Context, req *secretmanagerpb.AddSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.SecretVersion, error)
	DeleteSecret(ctx context.Context, req *secretmanagerpb.DeleteSecretRequest, opts ...gax.CallOption) error
	Close() error
}

// GCPStore is the gcp backend on Google Cloud Secret Manager. Each
// (service, key) pair maps to one secret whose latest version is the value.
type GCPStore struct {
	project string
	client  secretManagerClient
}

// NewGCPStore connects with application default credentials.
func NewGCPStore(ctx context.Context, project string) (*GCPStore, error) {
	if project == "" {
		return nil, fmt.Errorf("%w: gcp: no project configured (run `fragment config set gcpProject <project>` or set %s)",
			kerrors.ErrBackendUnavailable, GCPProjectEnv)
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: gcp: creating Secret Manager client: %v (%s)",
			kerrors.ErrBackendUnavailable, err, gcpLoginHint)
	}

	return newGCPStore(project, client), nil
}

func newGCPStore(project string, client secretManagerClient) *GCPStore {
	return &GCPStore{project: project, client: client}
}

func (s *GCPStore) Provider() Provider {
	return ProviderGCP
}

func (s *GCPStore) Close() error {
	return s.client.Close()
}

func (s *GCPStore) Get(ctx context.Context, service, key string) (string, bool, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.secretName(service, key) + "/versions/latest",
	})
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap("read", err)
	}

	return string(resp.GetPayload().GetData()), true, nil
}

func (s *GCPStore) Set(ctx context.Context, service, key, value string) error {
	name := s.secretName(service, key)
	payload := &secretmanagerpb.SecretPayload{Data: []byte(value)}

	_, err := s.client.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent:  name,
		Payload: payload,
	})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return s.wrap("write", err)
	}

	_, err = s.client.CreateSecret(ctx, &secretmanagerpb.CreateSecretRequest{
		Parent:   "projects/" + s.project,
		SecretId: SecretID(service, key),
		Secret: &secretmanagerpb.Secret{
			Replication: &secretmanagerpb.Replication{
				Replication: &secretmanagerpb.Replication_Automatic_{
					Automatic: &secretmanagerpb.Replication_Automatic{},
				},
			},
			Labels: map[string]string{"managed-by": ServiceName},
			Annotations: map[string]string{
				"service": service,
				"key":     key,
			},
		},
	})
	// Another writer may have created it between the two calls.
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return s.wrap("create", err)
	}

	_, err = s.client.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent:  name,
		Payload: payload,
	})
	if err != nil {
		return s.wrap("write", err)
	}
	return nil
}

func (s *GCPStore) Delete(ctx context.Context, service, key string) error {
	err := s.client.DeleteSecret(ctx, &secretmanagerpb.DeleteSecretRequest{
		Name: s.secretName(service, key),
	})
	if err == nil || status.Code(err) == codes.NotFound {
		return nil
	}
	return s.wrap("delete", err)
}

func (s *GCPStore) secretName(service, key string) string {
	return "projects/" + s.project + "/secrets/" + SecretID(service, key)
}

func (s *GCPStore) wrap(op string, err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: gcp %s: %v (%s)", kerrors.ErrBackendUnavailable, op, err, gcpLoginHint)
	default:
		return unavailable(ProviderGCP, op, err)
	}
}

// SecretID maps (service, key) to a Secret Manager secret ID. Characters
// outside [A-Za-z0-9_-] become '_' and a hash suffix keeps distinct pairs
// from colliding after that folding.
func SecretID(service, key string) string {
	sum := sha256.Sum256([]byte(service + "\x00" + key))
	suffix := "-" + hex.EncodeToString(sum[:4])

	readable := sanitizeSecretID(service + "--" + key)
	if limit := maxSecretIDLen - len(suffix); len(readable) > limit {
		readable = readable[:limit]
	}
	return readable + suffix
}

func sanitizeSecretID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
