// Package containerprobe answers one question against the Docker daemon:
// does this container id exist and is it running? It is a narrow
// adaptation of the teacher's broader discovery client, kept to the single
// probe target.ContainerExistsProbe needs.
package containerprobe

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"
)

// Client wraps a Docker API client for container-existence checks only.
type Client struct {
	cli *client.Client
}

// New connects to the Docker daemon using the standard environment
// variables (DOCKER_HOST, DOCKER_CERT_PATH, ...).
func New() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &Client{cli: cli}, nil
}

func (c *Client) Close() error {
	if c.cli == nil {
		return nil
	}
	return c.cli.Close()
}

// Exists reports whether id names a container the daemon knows about and
// reports as running. It matches target.ContainerExistsProbe's signature.
func (c *Client) Exists(ctx context.Context, id string) (bool, error) {
	ctr, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect container %s: %w", id, err)
	}
	return ctr.State != nil && ctr.State.Running, nil
}
