package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// 会員登録とプロフィール更新で共通のemail形式チェック。
// "Name <a@b>" のような表示名付きは受け付けない
func IsValidEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" || trimmed != email {
		return false
	}
	return emailValidator.Var(trimmed, "required,email") == nil
}
