package generate_slots

import "github.com/m04kA/SMC-DetailingBooking/pkg/types"

// Request модель запроса на генерацию слотов. Диапазон включительный.
type Request struct {
	From types.Date
	To   types.Date
}

// SkippedDay день, пропущенный из-за некорректного шаблона
type SkippedDay struct {
	Date   types.Date
	Reason string
}

// Response результат генерации
type Response struct {
	From        types.Date
	To          types.Date
	Requested   int          // сколько слотов должно существовать по шаблону
	Inserted    int          // сколько из них создано сейчас
	SkippedDays []SkippedDay // рабочие дни с некорректным шаблоном
}
