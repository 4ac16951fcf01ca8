// Package usecase contains application use cases.
package usecase

import (
	"fmt"
	"strings"

	"github.com/runoshun/issues/internal/domain"
)

// resolveAssignee expands domain.AssigneeMe to the current git user.
// Any other value is returned trimmed.
func resolveAssignee(identity domain.IdentityResolver, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value != domain.AssigneeMe {
		return value, nil
	}
	if identity == nil {
		return "", domain.ErrNoIdentity
	}
	name, err := identity.UserName()
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", domain.AssigneeMe, err)
	}
	return name, nil
}
