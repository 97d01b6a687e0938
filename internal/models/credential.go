package models

import (
	"strings"
	"time"
)

// DefaultCategory - категория учетной записи по умолчанию.
const DefaultCategory = "general"

// Credential представляет сохраненную учетную запись семейного менеджера паролей.
// Пароль в этой структуре отсутствует намеренно: сервер никогда не отдает его при чтении,
// получить открытый текст можно только через отдельный вызов decrypt.
type Credential struct {
	ID                  ID         `json:"password_id"`
	ServiceName         string     `json:"service_name"`
	ServiceURL          string     `json:"service_url"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	Category            string     `json:"category"`
	PasswordDate        Date       `json:"password_date"`
	ExpiryDate          Date       `json:"expiry_date"`
	FormattedExpiryDate string     `json:"formatted_expiry_date,omitempty"`
	Notes               string     `json:"notes"`
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
}

// CategoryOrDefault возвращает категорию или "general".
func (c Credential) CategoryOrDefault() string {
	if c.Category == "" {
		return DefaultCategory
	}
	return c.Category
}

// Login возвращает имя пользователя, а если его нет - email.
func (c Credential) Login() string {
	if c.Username != "" {
		return c.Username
	}
	return c.Email
}

// AddedBy возвращает имя пользователя, добавившего запись.
func (c Credential) AddedBy() string {
	first := c.FirstName
	if first == "" {
		first = "Unknown"
	}
	return strings.TrimSpace(first + " " + c.LastName)
}

// CredentialInput - тело запроса на создание/обновление учетной записи.
// Пустые необязательные поля уходят как null. Пустой Password не сериализуется вовсе:
// при обновлении это означает "оставить сохраненный секрет".
type CredentialInput struct {
	ServiceName  string  `json:"service_name"`
	ServiceURL   *string `json:"service_url"`
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	Password     string  `json:"password,omitempty"`
	Category     string  `json:"category"`
	PasswordDate string  `json:"password_date"`
	ExpiryDate   *string `json:"expiry_date"`
	Notes        *string `json:"notes"`
}

// CredentialPage - страница учетных записей.
type CredentialPage struct {
	Passwords  []Credential `json:"passwords"`
	Pagination Pagination   `json:"pagination"`
}

// CredentialStats - ответ GET /passwords/stats.
type CredentialStats struct {
	TotalPasswords   Count `json:"total_passwords"`
	TotalCategories  Count `json:"total_categories"`
	ExpiredPasswords Count `json:"expired_passwords"`
	ExpiringSoon     Count `json:"expiring_soon"`
}

// DecryptResponse - ответ POST /passwords/{id}/decrypt.
type DecryptResponse struct {
	DecryptedPassword string `json:"decrypted_password"`
}

// Nullable возвращает nil для пустой строки (после TrimSpace), иначе указатель на значение.
func Nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref возвращает значение указателя или пустую строку.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
