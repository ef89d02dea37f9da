package slotgen

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// RandSource источник случайности для пометки слотов занятыми
// Выделен в интерфейс, чтобы в тестах подменять случайность на детерминированную
type RandSource interface {
	Float64() float64
}

// DayRand фабрика источников случайности по дате
// Каждый день недели получает собственный источник
type DayRand func(date time.Time) RandSource

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// SeededDayRand возвращает DayRand, засеянный ключом сессии и датой
// Одна и та же сессия видит одну и ту же картину занятости при повторной
// генерации: неделя в ответе и проверка при выборе слота должны совпадать
func SeededDayRand(sessionKey string) DayRand {
	return func(date time.Time) RandSource {
		h := fnv.New64a()
		h.Write([]byte(sessionKey))
		h.Write([]byte("|"))
		h.Write([]byte(date.Format(domain.DateFormat)))
		return rand.New(rand.NewSource(int64(h.Sum64())))
	}
}
