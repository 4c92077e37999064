package redfish

import (
	"context"

	"github.com/rs/zerolog/log"
)

// WithSession runs fn inside a controller session. Logout runs on every
// exit path, including when fn fails; a logout failure never masks the
// work error.
func WithSession(ctx context.Context, c *Client, fn func(ctx context.Context) error) error {
	if err := c.Login(ctx); err != nil {
		return err
	}
	defer func() {
		if err := c.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("redfish_logout_failed")
		}
	}()
	return fn(ctx)
}
