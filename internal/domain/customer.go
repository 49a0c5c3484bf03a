package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode"
)

// VehicleSize класс автомобиля, влияет на объём работ
type VehicleSize string

const (
	VehicleSmall  VehicleSize = "small"
	VehicleMedium VehicleSize = "medium"
	VehicleLarge  VehicleSize = "large"
	VehicleVan    VehicleSize = "van"
)

func (s VehicleSize) IsValid() bool {
	switch s {
	case VehicleSmall, VehicleMedium, VehicleLarge, VehicleVan:
		return true
	default:
		return false
	}
}

// Customer зарегистрированный пользователь (UserID) или гость
type Customer struct {
	ID        int64
	UserID    *int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// IsGuest возвращает true для гостя без учётной записи
func (c *Customer) IsGuest() bool {
	return c.UserID == nil
}

type Vehicle struct {
	ID           int64
	CustomerID   int64
	Registration string
	Make         string
	Model        string
	Colour       *string
	Size         VehicleSize
	CreatedAt    time.Time
}

// NormalizeEmail приводит e-mail к виду, по которому ищутся гости
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail проверяет синтаксис адреса
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// NormalizeRegistration убирает пробелы и дефисы, переводит в верхний регистр: "ab12 cde" -> "AB12CDE"
func NormalizeRegistration(reg string) string {
	var b strings.Builder
	for _, r := range reg {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ValidRegistration проверяет нормализованный номер
func ValidRegistration(reg string) bool {
	if len(reg) < MinRegistrationLength || len(reg) > MaxRegistrationLength {
		return false
	}
	for _, r := range reg {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
