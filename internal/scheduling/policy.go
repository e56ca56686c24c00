package scheduling

import (
	"fmt"
	"strings"
)

// CapacityPolicy decides where capacity and open-state are enforced.
//
// With CapacityLax the controller only rejects duplicates; the staff surface
// hides full or non-open blocks and approval is trusted to the admin.
// With CapacityStrict requests and approvals are checked inside the transaction.
type CapacityPolicy string

const (
	CapacityLax    CapacityPolicy = "lax"
	CapacityStrict CapacityPolicy = "strict"
)

func ParseCapacityPolicy(s string) (CapacityPolicy, error) {
	switch CapacityPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CapacityLax:
		return CapacityLax, nil
	case CapacityStrict:
		return CapacityStrict, nil
	default:
		return "", fmt.Errorf("unknown capacity policy: %s", s)
	}
}
