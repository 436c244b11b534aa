package client

import "context"

// VisionClient is the backend the face detector talks to: it sends one
// prompt plus one base64-encoded image to a vision model and returns the
// raw model response.
type VisionClient interface {
	Query(ctx context.Context, model, prompt, imgB64 string) (string, error)
}
