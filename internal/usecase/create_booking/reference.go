package create_booking

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// UUIDReferenceGenerator номер DT-XXXXXXXX из случайного UUID (8 шестнадцатеричных символов в верхнем регистре)
type UUIDReferenceGenerator struct{}

// Generate возвращает новый номер
func (UUIDReferenceGenerator) Generate() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.ReferencePrefix + strings.ToUpper(id[:domain.ReferenceLength])
}
