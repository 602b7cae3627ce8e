package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// Me fetches the current user's profile including the AI analysis.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.doJSON(ctx, http.MethodGet, "/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type roadmapToggleRequest struct {
	PhaseIndex int  `json:"phase_index"`
	ItemIndex  int  `json:"item_index"`
	Completed  bool `json:"completed"`
}

// ToggleRoadmapItem confirms a checklist toggle with the service. The item
// is addressed by position within the stored roadmap.
func (c *Client) ToggleRoadmapItem(ctx context.Context, phaseIndex, itemIndex int, completed bool) error {
	return c.doJSON(ctx, http.MethodPatch, "/profile/roadmap/toggle", roadmapToggleRequest{
		PhaseIndex: phaseIndex,
		ItemIndex:  itemIndex,
		Completed:  completed,
	}, nil)
}

const pdfMediaType = "application/pdf"

type UploadRequest struct {
	TargetRole      string
	ExperienceLevel string
	Filename        string
	File            io.Reader
}

// UploadResume submits the résumé and career goal as one multipart request
// and returns the refreshed profile with the new analysis. The file part is
// declared application/pdf explicitly; the service rejects anything else.
func (c *Client) UploadResume(ctx context.Context, req UploadRequest) (*Profile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("target_role", req.TargetRole); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.WriteField("experience_level", req.ExperienceLevel); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, req.Filename))
	header.Set("Content-Type", pdfMediaType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var profile Profile
	if err := c.do(ctx, http.MethodPost, "/profile/upload", writer.FormDataContentType(), &buf, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type optimizeResponse struct {
	OptimizedContent string `json:"optimized_content"`
}

// OptimizeResume asks the service to rewrite the stored résumé as a LaTeX
// document that reflects completed roadmap tasks.
func (c *Client) OptimizeResume(ctx context.Context) (string, error) {
	var resp optimizeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/profile/optimize_resume", nil, &resp); err != nil {
		return "", err
	}
	return resp.OptimizedContent, nil
}
