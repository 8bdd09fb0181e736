package auth

import (
	"net/mail"
	"strings"

	"tripnest/utils"
)

const minPasswordLength = 6

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return utils.InvalidArgument("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return utils.InvalidArgument("enter a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return utils.InvalidArgument("password is required")
	}
	if len(password) < minPasswordLength {
		return utils.InvalidArgument("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func validateSignUp(email, password, name string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return utils.InvalidArgument("name is required")
	}
	return nil
}
