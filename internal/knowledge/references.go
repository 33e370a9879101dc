package knowledge

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
)

// Signer turns an s3:// object URI into a browsable link.
type Signer interface {
	Sign(ctx context.Context, uri string) (string, error)
}

// Resolver deduplicates citation URIs and resolves each into a named,
// signed reference for the API response.
type Resolver struct {
	signer Signer
}

func NewResolver(signer Signer) *Resolver {
	return &Resolver{signer: signer}
}

// Resolve maps citations to references, preserving first-seen order and
// dropping duplicate URIs. A citation that fails to sign is skipped
// rather than failing the whole response.
func (r *Resolver) Resolve(ctx context.Context, citations []domain.Citation) []domain.Reference {
	seen := map[string]bool{}
	var refs []domain.Reference
	for _, c := range citations {
		uri := strings.TrimSpace(c.URI)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true

		signed, err := r.signer.Sign(ctx, uri)
		if err != nil {
			log.Warn().Err(err).Str("uri", uri).Msg("knowledge: failed to sign reference")
			continue
		}
		refs = append(refs, domain.Reference{
			Filename: path.Base(uri),
			FileURL:  signed,
		})
	}
	return refs
}

// S3Signer issues presigned GET links for knowledge-base documents.
type S3Signer struct {
	presign *s3.PresignClient
	expires time.Duration
}

var _ Signer = (*S3Signer)(nil)

func NewS3Signer(ctx context.Context, region string, expires time.Duration) (*S3Signer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("knowledge: load aws config: %w", err)
	}
	return &S3Signer{
		presign: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		expires: expires,
	}, nil
}

func (s *S3Signer) Sign(ctx context.Context, uri string) (string, error) {
	bucket, key, err := splitS3URI(uri)
	if err != nil {
		return "", err
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String("inline"),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", fmt.Errorf("knowledge: presign %s: %w", uri, err)
	}
	return req.URL, nil
}

// LocalSigner produces stable offline links for mock deployments and
// tests. The token is an HMAC over the URI so links stay deterministic
// per secret without exposing bucket layout.
type LocalSigner struct {
	secret []byte
}

var _ Signer = (*LocalSigner)(nil)

func NewLocalSigner(secret string) *LocalSigner {
	return &LocalSigner{secret: []byte(secret)}
}

func (l *LocalSigner) Sign(_ context.Context, uri string) (string, error) {
	if _, _, err := splitS3URI(uri); err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, l.secret)
	mac.Write([]byte(uri))
	token := hex.EncodeToString(mac.Sum(nil))[:32]
	return fmt.Sprintf("https://documents.local/%s?token=%s",
		url.PathEscape(path.Base(uri)), token), nil
}

func splitS3URI(uri string) (bucket, key string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(uri, scheme) {
		return "", "", fmt.Errorf("knowledge: not an s3 uri: %q", uri)
	}
	rest := strings.TrimPrefix(uri, scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("knowledge: malformed s3 uri: %q", uri)
	}
	return bucket, key, nil
}
