package domain

import "fmt"

// SlotGenerationConfig конфигурация генерации слотов
type SlotGenerationConfig struct {
	StartHour        int  // Час начала рабочего окна (включительно)
	EndHour          int  // Час конца рабочего окна (не включительно)
	SlotWidthMinutes int  // Ширина одного слота
	FullSlotRatio    int  // Процент слотов, случайно помечаемых занятыми (0-100)
	ExcludeWeekends  bool // Исключать субботу и воскресенье
	MinLeadTimeHours int  // Минимальный срок до записи
}

// DefaultGenerationConfig возвращает конфигурацию со значениями по умолчанию
func DefaultGenerationConfig() SlotGenerationConfig {
	return SlotGenerationConfig{
		StartHour:        DefaultStartHour,
		EndHour:          DefaultEndHour,
		SlotWidthMinutes: DefaultSlotWidthMinutes,
		FullSlotRatio:    DefaultFullSlotRatio,
		ExcludeWeekends:  true,
		MinLeadTimeHours: DefaultMinLeadTimeHours,
	}
}

// Validate проверяет корректность конфигурации
func (c SlotGenerationConfig) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("startHour must be in [0, 23], got %d", c.StartHour)
	}
	if c.EndHour < 1 || c.EndHour > 24 {
		return fmt.Errorf("endHour must be in [1, 24], got %d", c.EndHour)
	}
	if c.StartHour >= c.EndHour {
		return fmt.Errorf("startHour (%d) must be before endHour (%d)", c.StartHour, c.EndHour)
	}
	if c.SlotWidthMinutes < MinSlotWidthMinutes || c.SlotWidthMinutes > MaxSlotWidthMinutes {
		return fmt.Errorf("slotWidthMinutes must be in [%d, %d], got %d",
			MinSlotWidthMinutes, MaxSlotWidthMinutes, c.SlotWidthMinutes)
	}
	if c.FullSlotRatio < MinFullSlotRatio || c.FullSlotRatio > MaxFullSlotRatio {
		return fmt.Errorf("fullSlotRatio must be in [%d, %d], got %d",
			MinFullSlotRatio, MaxFullSlotRatio, c.FullSlotRatio)
	}
	if c.MinLeadTimeHours < 0 {
		return fmt.Errorf("minLeadTimeHours must be non-negative, got %d", c.MinLeadTimeHours)
	}
	return nil
}
