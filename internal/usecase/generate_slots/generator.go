package generate_slots

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// Generate строит слоты, которые должны существовать в диапазоне [from, to] по шаблону.
// Детерминированная функция без побочных эффектов.
// Нерабочие дни пропускаются молча, рабочие дни с некорректной настройкой попадают в skipped.
func Generate(template domain.WeeklyTemplate, from, to types.Date) (slots []domain.Slot, skipped []SkippedDay) {
	for date := from; !date.After(to); date = date.AddDays(1) {
		day, ok := template.ForDate(date)
		if !ok || !day.IsWorking {
			continue
		}

		if err := day.Validate(); err != nil {
			skipped = append(skipped, SkippedDay{Date: date, Reason: err.Error()})
			continue
		}

		for _, start := range day.SortedStartTimes() {
			// Validate уже проверил, что слот заканчивается до полуночи
			end, _ := start.AddMinutes(day.SlotDurationMinutes)
			slots = append(slots, domain.Slot{
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				MaxCapacity: day.CapacityPerSlot,
			})
		}
	}

	return slots, skipped
}
