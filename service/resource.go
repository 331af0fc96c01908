package service

import (
	"context"
	"encoding/json"
	"fmt"

	casdoor "github.com/casdoor/casdoor-go-client"
	"github.com/casdoor/casdoor-go-client/models"
)

// ResourceService uploads and deletes files in Casdoor's resource storage.
type ResourceService struct {
	Client       *casdoor.Client
	Organization string
	Application  string
}

// NewResourceService creates a ResourceService for the client's configured
// organization and application.
func NewResourceService(c *casdoor.Client) *ResourceService {
	cfg := c.Config()
	return &ResourceService{Client: c, Organization: cfg.OrganizationName, Application: cfg.ApplicationName}
}

// UploadOptions describes where an uploaded file is filed.
type UploadOptions struct {
	Owner        string `url:"owner"`
	User         string `url:"user"`
	Application  string `url:"application"`
	Tag          string `url:"tag"`
	Parent       string `url:"parent"`
	FullFilePath string `url:"fullFilePath"`
	CreatedTime  string `url:"createdTime,omitempty"`
	Description  string `url:"description,omitempty"`
}

// UploadResource uploads the file at filePath. It returns the public URL of
// the stored file and the resource name.
func (s *ResourceService) UploadResource(ctx context.Context, opts UploadOptions, filePath string) (string, string, error) {
	if opts.Owner == "" {
		opts.Owner = s.Organization
	}
	if opts.Application == "" {
		opts.Application = s.Application
	}

	p, err := params(opts)
	if err != nil {
		return "", "", err
	}

	resp, err := casdoor.PostFile[string, string](ctx, s.Client, "upload-resource", p, filePath)
	if err != nil {
		return "", "", err
	}
	return resp.Data, resp.Data2, nil
}

// DeleteResource removes the resource called name.
func (s *ResourceService) DeleteResource(ctx context.Context, name string) (bool, error) {
	body, err := json.Marshal(models.Resource{Owner: s.Organization, Name: name})
	if err != nil {
		return false, fmt.Errorf("could not encode resource: %w", err)
	}

	resp, err := casdoor.PostRawBody[string, any](ctx, s.Client, "delete-resource", nil, string(body))
	if err != nil {
		return false, err
	}
	return resp.Data == models.Affected, nil
}
