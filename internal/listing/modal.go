package listing

// ModalMode - состояние формы создания/редактирования.
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreate
	ModalEdit
)

// Modal хранит режим формы. Идентификатор редактируемого объекта есть
// только в режиме ModalEdit и сбрасывается при любом закрытии.
type Modal struct {
	mode      ModalMode
	editingID string
}

func (m *Modal) OpenCreate() {
	m.mode = ModalCreate
	m.editingID = ""
}

func (m *Modal) OpenEdit(id string) {
	m.mode = ModalEdit
	m.editingID = id
}

func (m *Modal) Close() {
	m.mode = ModalClosed
	m.editingID = ""
}

func (m Modal) Mode() ModalMode { return m.mode }

func (m Modal) IsOpen() bool { return m.mode != ModalClosed }

// EditingID возвращает идентификатор редактируемого объекта, если форма в режиме редактирования.
func (m Modal) EditingID() (string, bool) {
	return m.editingID, m.mode == ModalEdit
}
