package client

import (
	"context"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// SendMessage sends one chat turn to the mentor service. Each turn is
// evaluated independently server-side; no prior history travels with it.
func (c *Client) SendMessage(ctx context.Context, message string) (string, error) {
	var resp chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/", chatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
