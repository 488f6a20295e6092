package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// Action is a destructive operation that needs an explicit confirmation.
type Action string

const (
	ActionDelete Action = "delete"
	ActionClear  Action = "clear"
)

// Confirmation is a pending destructive action. It is applied by Confirm
// with its token, or dropped by Cancel or expiry.
type Confirmation struct {
	Token     string            `json:"token"`
	Action    Action            `json:"action"`
	ProductID *models.ProductID `json:"product_id,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// RequestDelete opens a confirmation for removing id. The id does not have to
// exist: confirming an unknown id leaves the catalog unchanged.
func (c *Catalog) RequestDelete(id models.ProductID) Confirmation {
	return c.request(ActionDelete, &id)
}

// RequestClear opens a confirmation for removing every product.
func (c *Catalog) RequestClear() Confirmation {
	return c.request(ActionClear, nil)
}

func (c *Catalog) request(action Action, id *models.ProductID) Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	c.pruneExpired(now)

	conf := Confirmation{
		Token:     uuid.NewString(),
		Action:    action,
		ProductID: id,
		ExpiresAt: now.Add(c.confirmTTL),
	}
	c.pending[conf.Token] = conf
	c.log.Debug("confirmation requested", zap.String("action", string(action)), zap.String("token", conf.Token))
	return conf
}

// Confirm applies the pending action behind token. Tokens are single use.
func (c *Catalog) Confirm(ctx context.Context, token string) (Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, err := c.take(token)
	if err != nil {
		return Confirmation{}, err
	}

	switch conf.Action {
	case ActionDelete:
		c.deleteProduct(ctx, *conf.ProductID)
	case ActionClear:
		c.clearAll(ctx)
	}
	return conf, nil
}

// Cancel drops the pending action behind token without touching the catalog.
func (c *Catalog) Cancel(token string) (Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, err := c.take(token)
	if err != nil {
		return Confirmation{}, err
	}
	c.log.Debug("confirmation cancelled", zap.String("action", string(conf.Action)), zap.String("token", token))
	return conf, nil
}

// Pending returns the confirmation behind token if it is still open.
func (c *Catalog) Pending(token string) (Confirmation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.pending[token]
	if !ok || !c.clock().Before(conf.ExpiresAt) {
		return Confirmation{}, false
	}
	return conf, true
}

func (c *Catalog) take(token string) (Confirmation, error) {
	conf, ok := c.pending[token]
	if !ok {
		return Confirmation{}, ErrConfirmationNotFound
	}
	delete(c.pending, token)
	if !c.clock().Before(conf.ExpiresAt) {
		return Confirmation{}, ErrConfirmationExpired
	}
	return conf, nil
}

// pruneExpired forgets tokens that expired more than one TTL ago; younger
// expired tokens are kept so Confirm can still report them as expired.
func (c *Catalog) pruneExpired(now time.Time) {
	for token, conf := range c.pending {
		if now.Sub(conf.ExpiresAt) > c.confirmTTL {
			delete(c.pending, token)
		}
	}
}
