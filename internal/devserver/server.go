// Package devserver - локальный сервер разработки с REST API BrothersCloud.
// Данные хранятся в памяти, пароли шифруются secretbox.
package devserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// DemoUser - пользователь, которого создает Seed.
//
//nolint:gochecknoglobals // Константные данные демо-пользователя
var DemoUser = User{ID: 1, FirstName: "Demo", LastName: "Brother"}

// Config - параметры сервера.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	Now       func() time.Time
}

// Server объединяет хранилище, аутентификацию и маршруты.
type Server struct {
	Auth  *Authenticator
	Store *Store
	now   func() time.Time
}

// New создает сервер с пустым хранилищем.
func New(cfg Config) (*Server, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	auth, err := NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL, cfg.Now)
	if err != nil {
		return nil, err
	}
	sealer, err := NewSealer()
	if err != nil {
		return nil, err
	}
	return &Server{Auth: auth, Store: NewStore(sealer, cfg.Now), now: cfg.Now}, nil
}

// Router возвращает маршруты API. Все под /api требуют токен.
func (s *Server) Router() *chi.Mux {
	h := NewHandler(s.Store)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.Auth.Middleware)

		r.Route("/fbsc", func(r chi.Router) {
			r.Get("/records", h.ListRecords)
			r.Post("/records", h.CreateRecord)
			r.Get("/records/{id}", h.GetRecord)
			r.Put("/records/{id}", h.UpdateRecord)
			r.Delete("/records/{id}", h.DeleteRecord)
			r.Get("/products", h.ListProducts)
			r.Get("/stats", h.RecordStats)
		})

		r.Route("/passwords", func(r chi.Router) {
			r.Get("/", h.ListCredentials)
			r.Post("/", h.CreateCredential)
			r.Get("/categories", h.ListCategories)
			r.Get("/stats", h.CredentialStats)
			r.Get("/{id}", h.GetCredential)
			r.Put("/{id}", h.UpdateCredential)
			r.Delete("/{id}", h.DeleteCredential)
			r.Post("/{id}/decrypt", h.DecryptCredential)
		})

		r.Get("/events", h.ListEvents)
		r.Post("/events", h.CreateEvent)
		r.Post("/files", h.UploadFile)
	})
	return r
}

// Seed добавляет демо-пользователя и немного данных относительно текущей даты.
func (s *Server) Seed() error {
	s.Store.AddUser(DemoUser)
	today := models.Today(s.now())
	day := func(n int) string { return today.AddDays(n).String() }

	records := []models.RecordInput{
		{CustomerName: "Amina", Product: "Sneakers", Pair: 2, Price: 45, RecordDate: day(0)},
		{CustomerName: "Juma", Product: "Sandals", Pair: 1, Price: 12.5, RecordDate: day(-1), Notes: "Paid cash"},
		{CustomerName: "Neema", Product: "Boots", Pair: 1, Price: 60, RecordDate: day(-3)},
		{CustomerName: "Baraka", Product: "Sneakers", Pair: 3, Price: 70, RecordDate: day(-10)},
	}
	for _, in := range records {
		if _, err := s.Store.CreateRecord(DemoUser.ID, in); err != nil {
			return fmt.Errorf("ошибка создания демо-записи: %w", err)
		}
	}

	email := "family@example.com"
	expired, soon := day(-2), day(5)
	creds := []models.CredentialInput{
		{ServiceName: "Netflix", Email: &email, Password: "n3tfl1x-family", Category: "streaming",
			PasswordDate: day(-90), ExpiryDate: &soon},
		{ServiceName: "Bank", Username: models.Nullable("brothers"), Password: "b@nk-S3cret", Category: "finance",
			PasswordDate: day(-200), ExpiryDate: &expired},
		{ServiceName: "Wi-Fi", Password: "home-wifi-2026", PasswordDate: day(-30)},
	}
	for _, in := range creds {
		if _, err := s.Store.CreateCredential(DemoUser.ID, in); err != nil {
			return fmt.Errorf("ошибка создания демо-пароля: %w", err)
		}
	}

	_, err := s.Store.CreateEvent(models.EventInput{
		UserID:     fmt.Sprint(DemoUser.ID),
		EventName:  "Family dinner",
		EventDate:  day(7),
		Repetition: "monthly",
	})
	if err != nil {
		return fmt.Errorf("ошибка создания демо-события: %w", err)
	}
	return nil
}
