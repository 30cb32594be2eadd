package utils

import "github.com/gin-gonic/gin"

// Identity is the per-request caller identity decoded by the request gate.
// Handlers and services take it as an explicit value instead of re-deriving
// it from the token.
type Identity struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const identityKey = "identity"

// SetIdentity stores the caller identity on the request context. Additive:
// nothing else on the context is touched.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the identity set by the request gate, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
