package types

import "time"

// DBTime приводит момент времени к виду, в котором он пишется в БД:
// UTC с точностью до секунды. В SQLite время хранится строкой, и только
// при одинаковом формате строки сравниваются так же, как моменты времени.
func DBTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// DBTimePtr то же, что DBTime, для необязательных значений
func DBTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := DBTime(*t)
	return &v
}
