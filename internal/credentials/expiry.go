package credentials

import (
	"fmt"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// ExpiringSoonDays - сколько дней до истечения считается "скоро истекает".
const ExpiringSoonDays = 7

// ExpiryClass - класс оформления срока действия.
type ExpiryClass int

const (
	ExpiryNormal ExpiryClass = iota
	ExpiryExpired
	ExpiringSoon
)

func (c ExpiryClass) String() string {
	switch c {
	case ExpiryExpired:
		return "expired"
	case ExpiringSoon:
		return "expiring-soon"
	default:
		return ""
	}
}

// Expiry - статус срока действия на конкретный день.
type Expiry struct {
	Class    ExpiryClass
	DaysLeft int
	Text     string
}

// Classify сравнивает срок действия с сегодняшней датой (обе без времени суток).
// Просроченный - "Expired", от 0 до 7 дней - "N days left",
// иначе дата срока (как ее отформатировал сервер) или "-".
func Classify(cred models.Credential, today models.Date) Expiry {
	text := cred.FormattedExpiryDate
	if text == "" {
		text = cred.ExpiryDate.Display()
	}
	if cred.ExpiryDate.IsZero() {
		return Expiry{Class: ExpiryNormal, Text: text}
	}

	days := today.DaysUntil(cred.ExpiryDate)
	switch {
	case days < 0:
		return Expiry{Class: ExpiryExpired, DaysLeft: days, Text: "Expired"}
	case days <= ExpiringSoonDays:
		return Expiry{Class: ExpiringSoon, DaysLeft: days, Text: fmt.Sprintf("%d days left", days)}
	default:
		return Expiry{Class: ExpiryNormal, DaysLeft: days, Text: text}
	}
}
