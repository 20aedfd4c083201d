// Package publish uploads a rendered leaderboard to Azure Blob Storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// DefaultBlob is the blob name used when Config.Blob is empty.
const DefaultBlob = "index.html"

// Config identifies the upload target.
type Config struct {
	AccountURL string
	Container  string
	Blob       string
}

// Validate reports missing fields.
func (c Config) Validate() error {
	var errs []error
	if c.AccountURL == "" {
		errs = append(errs, errors.New("publish account URL is required"))
	}
	if c.Container == "" {
		errs = append(errs, errors.New("publish container is required"))
	}
	return errors.Join(errs...)
}

// Uploader is the subset of *azblob.Client used for publishing.
type Uploader interface {
	UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

// Publisher writes documents to a single blob.
type Publisher struct {
	client    Uploader
	container string
	blob      string
}

// New creates a Publisher authenticated with cred. A nil cred falls back to
// azidentity.DefaultAzureCredential.
func New(cfg Config, cred azcore.TokenCredential) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cred == nil {
		dc, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", err)
		}
		cred = dc
	}
	client, err := azblob.NewClient(cfg.AccountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}
	return NewWithClient(cfg, client)
}

// NewWithClient creates a Publisher around an existing client.
func NewWithClient(cfg Config, client Uploader) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := cfg.Blob
	if name == "" {
		name = DefaultBlob
	}
	return &Publisher{client: client, container: cfg.Container, blob: name}, nil
}

// Target returns "container/blob".
func (p *Publisher) Target() string {
	return p.container + "/" + p.blob
}

// Publish uploads data with the given content type, replacing any existing
// blob.
func (p *Publisher) Publish(ctx context.Context, data []byte, contentType string) error {
	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(contentType),
		},
	}
	if _, err := p.client.UploadBuffer(ctx, p.container, p.blob, data, opts); err != nil {
		return fmt.Errorf("uploading %s: %w", p.Target(), err)
	}
	slog.Debug("published leaderboard", "target", p.Target(), "bytes", len(data))
	return nil
}
