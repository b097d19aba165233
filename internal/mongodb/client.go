// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mongodb connects to MongoDB and exposes the narrow catalog view the
// bootstrap needs: collections and their indexes.
package mongodb

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pdiddy/dbinit/pkg/types"
)

const defaultConnectTimeout = 10 * time.Second

// Client wraps a connected *mongo.Client.
type Client struct {
	client *mongo.Client
}

// Connect opens a MongoDB connection and waits until the primary answers a
// ping, retrying with backoff while the server comes up. Progress for retries
// is written to w. The returned client must be disconnected by the caller.
func Connect(ctx context.Context, cfg types.ConnectionConfig, w io.Writer) (*Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", redactURI(cfg.URI), err)
	}

	if err := PingWithRetry(ctx, client, cfg.ConnectRetries, timeout, w); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging %s: %w", redactURI(cfg.URI), err)
	}

	return &Client{client: client}, nil
}

// Database returns the catalog for the named database. The name is passed to
// the driver unchecked.
func (c *Client) Database(name string) *Catalog {
	return NewCatalog(c.client.Database(name))
}

// Disconnect closes the connection pool.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// redactURI hides the password of a connection string for messages.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "MongoDB"
	}
	return u.Redacted()
}
