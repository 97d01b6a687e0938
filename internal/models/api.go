package models

// Pagination - данные пагинации, которые сервер возвращает вместе со списком.
type Pagination struct {
	Total  Count `json:"total"`
	Limit  Count `json:"limit"`
	Offset Count `json:"offset"`
}

// ErrorResponse - тело ответа сервера с ошибкой.
// Разные эндпоинты кладут текст то в message, то в error.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text возвращает текст ошибки из любого из полей.
func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// MessageResponse - простой ответ с сообщением (успешные мутации).
type MessageResponse struct {
	Message string `json:"message"`
}
