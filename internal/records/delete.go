package records

import (
	"context"
	"log/slog"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
)

const (
	MsgDeleted        = "Record deleted successfully"
	MsgDeleteRejected = "Error deleting record"
	MsgDeleteFailed   = "Failed to delete record"
	MsgDeleteConfirm  = "Are you sure you want to delete this record?"
)

// RequestDelete запоминает запись, ожидающую подтверждения удаления.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	c.pendingDelete = id
	c.mu.Unlock()
}

// CancelDelete отменяет удаление.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
}

// PendingDelete возвращает идентификатор записи, ожидающей подтверждения.
func (c *Controller) PendingDelete() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete
}

// ConfirmDelete удаляет запись, ранее переданную в RequestDelete.
func (c *Controller) ConfirmDelete(ctx context.Context) (feedback.Notice, error) {
	c.mu.Lock()
	id := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()

	if id == "" {
		return feedback.Fail(MsgDeleteFailed), ErrNoPendingDelete
	}

	if err := c.api.DeleteRecord(ctx, id); err != nil {
		slog.Error("Ошибка удаления записи", "id", id, "error", err)
		return feedback.FromResponse(err, MsgDeleteRejected, MsgDeleteFailed), err
	}
	c.refresh(ctx)
	return feedback.Ok(MsgDeleted), nil
}
