package access

import (
	"errors"

	"dreamnest-app/internal/domain/users"

	"gorm.io/gorm"
)

// ResolveRole looks up the role on the profile record. A missing profile
// resolves to the default role; any other failure is an upstream error
// the caller must surface as such (never as a login redirect).
//
// The result is valid for the current request only. Roles change between
// requests (admin promotion, author approval), so never cache across
// requests.
func ResolveRole(db *gorm.DB, userID uint) (Role, error) {
	var user users.User
	err := db.Select("role").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultRole, nil
	}
	if err != nil {
		return "", err
	}
	return ParseRole(user.Role), nil
}
