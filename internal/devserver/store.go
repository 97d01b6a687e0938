package devserver

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const (
	allValue       = "all"
	expiringWindow = 7
)

var (
	// ErrNotFound - ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrUnknownUser - токен выдан пользователю, которого нет в хранилище.
	ErrUnknownUser = errors.New("неизвестный пользователь")
)

// InvalidError - ошибка валидации входных данных, текст уходит клиенту.
type InvalidError struct {
	Message string
}

func (e *InvalidError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &InvalidError{Message: fmt.Sprintf(format, args...)}
}

// User - член семьи, от имени которого создаются записи.
type User struct {
	ID        int64
	FirstName string
	LastName  string
}

type storedRecord struct {
	rec    models.Record
	seq    int64
	author int64
}

type storedCredential struct {
	cred   models.Credential
	seq    int64
	author int64
	sealed string
}

// Query - разобранные параметры списка.
type Query struct {
	Search   string
	Category string
	From     models.Date
	To       models.Date
	Limit    int // 0 - без ограничения
	Offset   int
}

// ParseQuery разбирает параметры списка. categoryKey - "product" или "category".
func ParseQuery(v url.Values, categoryKey string) (Query, error) {
	q := Query{
		Search:   strings.ToLower(strings.TrimSpace(v.Get("search"))),
		Category: strings.TrimSpace(v.Get(categoryKey)),
	}
	if q.Category == allValue {
		q.Category = ""
	}
	var err error
	if q.From, err = models.ParseDate(v.Get("from")); err != nil {
		return Query{}, invalid("Invalid from date")
	}
	if q.To, err = models.ParseDate(v.Get("to")); err != nil {
		return Query{}, invalid("Invalid to date")
	}
	if q.Limit, err = nonNegative(v.Get("limit")); err != nil {
		return Query{}, invalid("Invalid limit")
	}
	if q.Offset, err = nonNegative(v.Get("offset")); err != nil {
		return Query{}, invalid("Invalid offset")
	}
	return q, nil
}

func nonNegative(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("неверное число %q", s)
	}
	return n, nil
}

func (q Query) inRange(d models.Date) bool {
	if !q.From.IsZero() && (d.IsZero() || d.Before(q.From)) {
		return false
	}
	if !q.To.IsZero() && (d.IsZero() || q.To.Before(d)) {
		return false
	}
	return true
}

func (q Query) matches(fields ...string) bool {
	if q.Search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q.Search) {
			return true
		}
	}
	return false
}

// window возвращает срез страницы и данные пагинации.
func window[T any](items []T, q Query) ([]T, models.Pagination) {
	total := len(items)
	start := min(q.Offset, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	limit := q.Limit
	if limit == 0 {
		limit = total
	}
	return items[start:end], models.Pagination{
		Total:  models.Count(total),
		Limit:  models.Count(limit),
		Offset: models.Count(q.Offset),
	}
}

// Store - общее семейное хранилище в памяти.
type Store struct {
	mu      sync.RWMutex
	sealer  *Sealer
	now     func() time.Time
	users   map[int64]User
	records []storedRecord
	creds   []storedCredential
	events  []models.Event
	files   []models.FileMeta
	seq     int64
}

// NewStore создает пустое хранилище.
func NewStore(sealer *Sealer, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		sealer: sealer,
		now:    now,
		users:  make(map[int64]User),
	}
}

// AddUser регистрирует пользователя.
func (s *Store) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// HasUser сообщает, что пользователь зарегистрирован.
func (s *Store) HasUser(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) author(id int64) (User, error) {
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUnknownUser
	}
	return u, nil
}

func (s *Store) today() models.Date {
	return models.Today(s.now())
}

// byDateDesc - новые сверху, при равной дате позже добавленные выше.
func byDateDesc(ad, bd models.Date, aseq, bseq int64) int {
	if c := bd.Time().Compare(ad.Time()); c != 0 {
		return c
	}
	return cmp.Compare(bseq, aseq)
}

// --- Записи FBSC ---

func validateRecord(in models.RecordInput) (models.Record, error) {
	rec := models.Record{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Product:      strings.TrimSpace(in.Product),
		Pair:         models.Count(in.Pair),
		Price:        models.Money(in.Price),
		Notes:        strings.TrimSpace(in.Notes),
	}
	if rec.CustomerName == "" || rec.Product == "" {
		return models.Record{}, invalid("Customer name and product are required")
	}
	if in.Pair < 1 {
		return models.Record{}, invalid("Pair must be at least 1")
	}
	if in.Price < 0 {
		return models.Record{}, invalid("Price must not be negative")
	}
	date, err := models.ParseDate(in.RecordDate)
	if err != nil || date.IsZero() {
		return models.Record{}, invalid("Valid record date is required")
	}
	rec.RecordDate = date
	return rec, nil
}

// CreateRecord добавляет запись от имени пользователя.
func (s *Store) CreateRecord(userID int64, in models.RecordInput) (models.Record, error) {
	rec, err := validateRecord(in)
	if err != nil {
		return models.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.author(userID)
	if err != nil {
		return models.Record{}, err
	}
	seq := s.nextID()
	rec.ID = models.ID(strconv.FormatInt(seq, 10))
	rec.FirstName, rec.LastName = u.FirstName, u.LastName
	s.records = append(s.records, storedRecord{rec: rec, seq: seq, author: userID})
	return rec, nil
}

// UpdateRecord заменяет поля записи. Автор не меняется.
func (s *Store) UpdateRecord(id string, in models.RecordInput) error {
	rec, err := validateRecord(in)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.recordIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	old := s.records[i].rec
	rec.ID, rec.FirstName, rec.LastName = old.ID, old.FirstName, old.LastName
	s.records[i].rec = rec
	return nil
}

// DeleteRecord удаляет запись.
func (s *Store) DeleteRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.recordIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// Record возвращает запись по ID.
func (s *Store) Record(id string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.recordIndex(id)
	if i < 0 {
		return models.Record{}, ErrNotFound
	}
	return s.records[i].rec, nil
}

func (s *Store) recordIndex(id string) int {
	return slices.IndexFunc(s.records, func(r storedRecord) bool { return string(r.rec.ID) == id })
}

// Records возвращает страницу записей, подходящих под фильтр.
func (s *Store) Records(q Query) models.RecordPage {
	s.mu.RLock()
	matched := make([]storedRecord, 0, len(s.records))
	for _, r := range s.records {
		if q.Category != "" && r.rec.Product != q.Category {
			continue
		}
		if !q.inRange(r.rec.RecordDate) || !q.matches(r.rec.CustomerName, r.rec.Product, r.rec.Notes) {
			continue
		}
		matched = append(matched, r)
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b storedRecord) int {
		return byDateDesc(a.rec.RecordDate, b.rec.RecordDate, a.seq, b.seq)
	})
	page, pagination := window(matched, q)
	out := make([]models.Record, len(page))
	for i, r := range page {
		out[i] = r.rec
	}
	return models.RecordPage{Records: out, Pagination: pagination}
}

// Products возвращает различные продукты по алфавиту.
func (s *Store) Products() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]string, 0, len(s.records))
	for _, r := range s.records {
		products = append(products, r.rec.Product)
	}
	slices.Sort(products)
	return slices.Compact(products)
}

// RecordStats считает выручку по записям не раньше from.
func (s *Store) RecordStats(from models.Date) models.RecordStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rev models.Revenue
	for _, r := range s.records {
		if !from.IsZero() && r.rec.RecordDate.Before(from) {
			continue
		}
		rev.TotalOrders++
		rev.TotalRevenue += r.rec.Price
	}
	if rev.TotalOrders > 0 {
		rev.AvgOrderValue = rev.TotalRevenue / models.Money(rev.TotalOrders)
	}
	return models.RecordStats{Revenue: rev}
}

// --- Пароли ---

type credentialFields struct {
	cred     models.Credential
	password string
}

func validateCredential(in models.CredentialInput, creating bool) (credentialFields, error) {
	f := credentialFields{
		cred: models.Credential{
			ServiceName: strings.TrimSpace(in.ServiceName),
			ServiceURL:  models.Deref(in.ServiceURL),
			Username:    models.Deref(in.Username),
			Email:       models.Deref(in.Email),
			Category:    strings.TrimSpace(in.Category),
			Notes:       models.Deref(in.Notes),
		},
		password: in.Password,
	}
	if f.cred.ServiceName == "" {
		return credentialFields{}, invalid("Service name is required")
	}
	if creating && f.password == "" {
		return credentialFields{}, invalid("Password is required")
	}
	if f.cred.Category == "" {
		f.cred.Category = models.DefaultCategory
	}
	date, err := models.ParseDate(in.PasswordDate)
	if err != nil || date.IsZero() {
		return credentialFields{}, invalid("Valid password date is required")
	}
	f.cred.PasswordDate = date
	if f.cred.ExpiryDate, err = models.ParseDate(models.Deref(in.ExpiryDate)); err != nil {
		return credentialFields{}, invalid("Invalid expiry date")
	}
	return f, nil
}

// CreateCredential сохраняет учетную запись, пароль хранится зашифрованным.
func (s *Store) CreateCredential(userID int64, in models.CredentialInput) (models.Credential, error) {
	f, err := validateCredential(in, true)
	if err != nil {
		return models.Credential{}, err
	}
	sealed, err := s.sealer.Seal(f.password)
	if err != nil {
		return models.Credential{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.author(userID)
	if err != nil {
		return models.Credential{}, err
	}
	seq := s.nextID()
	created := s.now().UTC()
	cred := f.cred
	cred.ID = models.ID(strconv.FormatInt(seq, 10))
	cred.FirstName, cred.LastName = u.FirstName, u.LastName
	cred.CreatedAt = &created
	s.creds = append(s.creds, storedCredential{cred: cred, seq: seq, author: userID, sealed: sealed})
	return cred, nil
}

// UpdateCredential обновляет поля. Пустой пароль оставляет сохраненный секрет.
func (s *Store) UpdateCredential(id string, in models.CredentialInput) error {
	f, err := validateCredential(in, false)
	if err != nil {
		return err
	}
	var sealed string
	if f.password != "" {
		if sealed, err = s.sealer.Seal(f.password); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.credentialIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	old := s.creds[i].cred
	cred := f.cred
	cred.ID, cred.FirstName, cred.LastName, cred.CreatedAt = old.ID, old.FirstName, old.LastName, old.CreatedAt
	s.creds[i].cred = cred
	if sealed != "" {
		s.creds[i].sealed = sealed
	}
	return nil
}

// DeleteCredential удаляет учетную запись.
func (s *Store) DeleteCredential(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.credentialIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.creds = slices.Delete(s.creds, i, i+1)
	return nil
}

// Credential возвращает учетную запись без пароля.
func (s *Store) Credential(id string) (models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.credentialIndex(id)
	if i < 0 {
		return models.Credential{}, ErrNotFound
	}
	return s.withExpiry(s.creds[i].cred), nil
}

// Decrypt возвращает открытый пароль.
func (s *Store) Decrypt(id string) (string, error) {
	s.mu.RLock()
	i := s.credentialIndex(id)
	if i < 0 {
		s.mu.RUnlock()
		return "", ErrNotFound
	}
	sealed := s.creds[i].sealed
	s.mu.RUnlock()
	return s.sealer.Open(sealed)
}

func (s *Store) credentialIndex(id string) int {
	return slices.IndexFunc(s.creds, func(c storedCredential) bool { return string(c.cred.ID) == id })
}

func (s *Store) withExpiry(c models.Credential) models.Credential {
	c.FormattedExpiryDate = ""
	if !c.ExpiryDate.IsZero() {
		c.FormattedExpiryDate = c.ExpiryDate.Display()
	}
	return c
}

// Credentials возвращает страницу учетных записей.
func (s *Store) Credentials(q Query) models.CredentialPage {
	s.mu.RLock()
	matched := make([]storedCredential, 0, len(s.creds))
	for _, c := range s.creds {
		if q.Category != "" && c.cred.Category != q.Category {
			continue
		}
		if !q.inRange(c.cred.PasswordDate) ||
			!q.matches(c.cred.ServiceName, c.cred.ServiceURL, c.cred.Username, c.cred.Email, c.cred.Notes) {
			continue
		}
		matched = append(matched, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b storedCredential) int {
		return byDateDesc(a.cred.PasswordDate, b.cred.PasswordDate, a.seq, b.seq)
	})
	page, pagination := window(matched, q)
	out := make([]models.Credential, len(page))
	for i, c := range page {
		out[i] = s.withExpiry(c.cred)
	}
	return models.CredentialPage{Passwords: out, Pagination: pagination}
}

// Categories возвращает различные категории по алфавиту.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]string, 0, len(s.creds))
	for _, c := range s.creds {
		categories = append(categories, c.cred.Category)
	}
	slices.Sort(categories)
	return slices.Compact(categories)
}

// CredentialStats считает итоги. Истекающие - в ближайшие семь дней, включая сегодня.
func (s *Store) CredentialStats() models.CredentialStats {
	today := s.today()
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := models.CredentialStats{TotalPasswords: models.Count(len(s.creds))}
	categories := make(map[string]struct{})
	for _, c := range s.creds {
		categories[c.cred.Category] = struct{}{}
		if c.cred.ExpiryDate.IsZero() {
			continue
		}
		switch days := today.DaysUntil(c.cred.ExpiryDate); {
		case days < 0:
			stats.ExpiredPasswords++
		case days <= expiringWindow:
			stats.ExpiringSoon++
		}
	}
	stats.TotalCategories = models.Count(len(categories))
	return stats
}

// --- События и файлы ---

// CreateEvent добавляет событие в календарь пользователя.
func (s *Store) CreateEvent(in models.EventInput) (models.Event, error) {
	name := strings.TrimSpace(in.EventName)
	if name == "" || strings.TrimSpace(in.UserID) == "" {
		return models.Event{}, invalid("Event name and user are required")
	}
	date, err := models.ParseDate(in.EventDate)
	if err != nil || date.IsZero() {
		return models.Event{}, invalid("Valid event date is required")
	}
	repetition := in.Repetition
	if repetition == "" {
		repetition = "none"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := models.Event{
		ID:               models.ID(strconv.FormatInt(s.nextID(), 10)),
		UserID:           models.ID(in.UserID),
		EventName:        name,
		EventDescription: strings.TrimSpace(in.EventDescription),
		EventDate:        date,
		Repetition:       repetition,
	}
	s.events = append(s.events, ev)
	return ev, nil
}

// Events возвращает события пользователя по возрастанию даты.
func (s *Store) Events(userID string) []models.Event {
	s.mu.RLock()
	out := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		if string(ev.UserID) == userID {
			out = append(out, ev)
		}
	}
	s.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b models.Event) int {
		return a.EventDate.Time().Compare(b.EventDate.Time())
	})
	return out
}

// AddFile сохраняет метаданные загруженного файла.
func (s *Store) AddFile(meta models.FileMeta) models.FileMeta {
	meta.ID = models.ID(uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, meta)
	return meta
}

// Files возвращает метаданные файлов пользователя.
func (s *Store) Files(userID string) []models.FileMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.FileMeta
	for _, f := range s.files {
		if string(f.UserID) == userID {
			out = append(out, f)
		}
	}
	return out
}
