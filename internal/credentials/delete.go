package credentials

import (
	"context"
	"log/slog"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
)

const (
	MsgDeleted        = "Password deleted successfully"
	MsgDeleteRejected = "Error deleting password"
	MsgDeleteFailed   = "Failed to delete password"
	MsgDeleteConfirm  = "Are you sure you want to delete this password?"
)

// RequestDelete запоминает учетную запись, ожидающую подтверждения удаления.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	c.pendingDelete = id
	c.mu.Unlock()
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
}

func (c *Controller) PendingDelete() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete
}

// ConfirmDelete удаляет запись, ранее переданную в RequestDelete.
// Если удаляемая запись открыта в карточке, карточка закрывается.
func (c *Controller) ConfirmDelete(ctx context.Context) (feedback.Notice, error) {
	c.mu.Lock()
	id := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()

	if id == "" {
		return feedback.Fail(MsgDeleteFailed), ErrNoPendingDelete
	}

	if err := c.api.DeleteCredential(ctx, id); err != nil {
		slog.Error("Ошибка удаления пароля", "id", id, "error", err)
		return feedback.FromResponse(err, MsgDeleteRejected, MsgDeleteFailed), err
	}

	if d, ok := c.Detail(); ok && d.Credential.ID.String() == id {
		c.CloseDetail()
	}
	c.refresh(ctx)
	return feedback.Ok(MsgDeleted), nil
}
