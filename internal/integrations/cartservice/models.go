package cartservice

// Cart корзина пользователя из CartService
type Cart struct {
	UserID   int64         `json:"user_id"`
	Services []CartService `json:"services"`
}

// CartService услуга в корзине
type CartService struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// TotalDurationMinutes возвращает суммарную длительность услуг в корзине
func (c *Cart) TotalDurationMinutes() int {
	total := 0
	for _, svc := range c.Services {
		total += svc.DurationMinutes
	}
	return total
}

// IsEmpty возвращает true, если в корзине нет услуг
func (c *Cart) IsEmpty() bool {
	return len(c.Services) == 0
}

// ErrorResponse модель ошибки от CartService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
