package models

// Event - событие календаря пользователя.
type Event struct {
	ID               ID     `json:"event_id,omitempty"`
	UserID           ID     `json:"user_id,omitempty"`
	EventName        string `json:"event_name"`
	EventDescription string `json:"event_description"`
	EventDate        Date   `json:"event_date"`
	Repetition       string `json:"repetition"`
}

// DisplayDate возвращает дату события или "Unknown Date", если дата не распознана.
func (e Event) DisplayDate() string {
	if e.EventDate.IsZero() {
		return "Unknown Date"
	}
	return e.EventDate.Display()
}

// EventInput - тело запроса POST /events.
type EventInput struct {
	UserID           string `json:"user_id"`
	EventName        string `json:"event_name"`
	EventDescription string `json:"event_description"`
	EventDate        string `json:"event_date"`
	Repetition       string `json:"repetition"`
}

// FileMeta - метаданные загруженного файла (ответ POST /files).
type FileMeta struct {
	ID              ID     `json:"file_id,omitempty"`
	UserID          ID     `json:"user_id,omitempty"`
	FileType        string `json:"file_type"`
	FileName        string `json:"file_name"`
	FileDescription string `json:"file_description"`
	OriginalName    string `json:"original_name,omitempty"`
	SizeBytes       int64  `json:"size,omitempty"`
}
