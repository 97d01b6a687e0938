package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const (
	maxUploadMemory = 32 << 20
	maxJSONBody     = 1 << 20
)

//nolint:gochecknoglobals // Неизменяемый список типов файлов
var fileTypes = []string{"image", "document", "video"}

// Handler обслуживает REST API поверх Store.
type Handler struct {
	store *Store
}

// NewHandler создает обработчик.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// decodeJSON читает тело запроса. При ошибке ответ уже записан.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		slog.Debug("Ошибка декодирования тела запроса", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondError переводит ошибку хранилища в HTTP-ответ.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var inv *InvalidError
	switch {
	case errors.As(err, &inv):
		writeError(w, http.StatusBadRequest, inv.Message)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrUnknownUser):
		writeError(w, http.StatusUnauthorized, "User not found")
	default:
		slog.Error("Ошибка обработки запроса", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
	}
	return userID, ok
}

func message(w http.ResponseWriter, status int, text string) {
	writeJSON(w, status, models.MessageResponse{Message: text})
}

// --- FBSC ---

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query(), "product")
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Records(q))
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Record(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in models.RecordInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := h.store.CreateRecord(userID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	slog.Info("Создана запись", "id", rec.ID, "user_id", userID)
	message(w, http.StatusCreated, "Record created successfully")
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var in models.RecordInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.store.UpdateRecord(chi.URLParam(r, "id"), in); err != nil {
		respondError(w, r, err)
		return
	}
	message(w, http.StatusOK, "Record updated successfully")
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRecord(chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	message(w, http.StatusOK, "Record deleted successfully")
}

func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Products())
}

func (h *Handler) RecordStats(w http.ResponseWriter, r *http.Request) {
	from, err := models.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	writeJSON(w, http.StatusOK, h.store.RecordStats(from))
}

// --- Пароли ---

func (h *Handler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query(), "category")
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Credentials(q))
}

func (h *Handler) GetCredential(w http.ResponseWriter, r *http.Request) {
	cred, err := h.store.Credential(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cred)
}

func (h *Handler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in models.CredentialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	cred, err := h.store.CreateCredential(userID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	slog.Info("Сохранен пароль", "id", cred.ID, "user_id", userID)
	message(w, http.StatusCreated, "Password saved successfully")
}

func (h *Handler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	var in models.CredentialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.store.UpdateCredential(chi.URLParam(r, "id"), in); err != nil {
		respondError(w, r, err)
		return
	}
	message(w, http.StatusOK, "Password updated successfully")
}

func (h *Handler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCredential(chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	message(w, http.StatusOK, "Password deleted successfully")
}

func (h *Handler) DecryptCredential(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plain, err := h.store.Decrypt(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	slog.Info("Расшифрован пароль", "id", id)
	writeJSON(w, http.StatusOK, models.DecryptResponse{DecryptedPassword: plain})
}

func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Categories())
}

func (h *Handler) CredentialStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CredentialStats())
}

// --- События и файлы ---

// ownUserID проверяет, что user_id из запроса совпадает с владельцем токена.
func ownUserID(w http.ResponseWriter, r *http.Request, claimed string) bool {
	userID, ok := currentUser(w, r)
	if !ok {
		return false
	}
	if claimed != strconv.FormatInt(userID, 10) {
		writeError(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	claimed := r.URL.Query().Get("user_id")
	if !ownUserID(w, r, claimed) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.Events(claimed))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !ownUserID(w, r, in.UserID) {
		return
	}
	ev, err := h.store.CreateEvent(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	claimed := r.FormValue("user_id")
	if !ownUserID(w, r, claimed) {
		return
	}
	fileType := r.FormValue("file_type")
	if !slices.Contains(fileTypes, fileType) {
		writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}
	name := strings.TrimSpace(r.FormValue("file_name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "File name is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()
	size, err := io.Copy(io.Discard, file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	meta := h.store.AddFile(models.FileMeta{
		UserID:          models.ID(claimed),
		FileType:        fileType,
		FileName:        name,
		FileDescription: strings.TrimSpace(r.FormValue("file_description")),
		OriginalName:    header.Filename,
		SizeBytes:       size,
	})
	slog.Info("Загружен файл", "id", meta.ID, "type", fileType, "size", size)
	writeJSON(w, http.StatusCreated, meta)
}
