package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault/booking-api/internal/auth"
	"github.com/medvault/booking-api/internal/booking"
	"github.com/medvault/booking-api/internal/handlers"
	"github.com/medvault/booking-api/internal/identity"
	"github.com/medvault/booking-api/internal/middleware"
	"github.com/medvault/booking-api/internal/models"
	"github.com/medvault/booking-api/internal/payments"
	"github.com/medvault/booking-api/internal/store"
)

// fakeDB is an in-memory stand-in for the Mongo store, implementing every
// store interface the handlers and the booking service consume.
type fakeDB struct {
	users    map[string]*models.User
	doctors  map[string]*models.Doctor
	admins   map[string]*models.Admin
	bookings map[string]*models.Booking
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[string]*models.User{},
		doctors:  map[string]*models.Doctor{},
		admins:   map[string]*models.Admin{},
		bookings: map[string]*models.Booking{},
	}
}

func (db *fakeDB) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (db *fakeDB) UserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := db.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (db *fakeDB) InsertUser(_ context.Context, u *models.User) error {
	for _, existing := range db.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	db.users[u.ID.Hex()] = u
	return nil
}

func (db *fakeDB) DoctorByID(_ context.Context, id string) (*models.Doctor, error) {
	if d, ok := db.doctors[id]; ok {
		return d, nil
	}
	return nil, store.ErrNotFound
}

func (db *fakeDB) ListDoctors(_ context.Context, query string) ([]models.Doctor, error) {
	out := []models.Doctor{}
	for _, d := range db.doctors {
		if d.IsApproved != models.ApprovalApproved {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(d.Name), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(d.Specialization), strings.ToLower(query)) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (db *fakeDB) UpdateDoctor(_ context.Context, id string, upd store.DoctorUpdate) (*models.Doctor, error) {
	d, ok := db.doctors[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Phone != nil {
		d.Phone = *upd.Phone
	}
	if upd.Photo != nil {
		d.Photo = *upd.Photo
	}
	if upd.Specialization != nil {
		d.Specialization = *upd.Specialization
	}
	if upd.Bio != nil {
		d.Bio = *upd.Bio
	}
	if upd.About != nil {
		d.About = *upd.About
	}
	if upd.TicketPrice != nil {
		d.TicketPrice = *upd.TicketPrice
	}
	if upd.Password != nil {
		d.Password = *upd.Password
	}
	return d, nil
}

func (db *fakeDB) ApproveDoctor(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := db.doctors[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d.IsApproved = models.ApprovalApproved
	return d, nil
}

func (db *fakeDB) InsertBooking(_ context.Context, b *models.Booking) error {
	for _, existing := range db.bookings {
		if existing.DoctorID == b.DoctorID && existing.Date == b.Date &&
			existing.Time == b.Time && existing.Status == models.StatusPending {
			return store.ErrDuplicate
		}
	}
	cp := *b
	db.bookings[b.ID.Hex()] = &cp
	return nil
}

func (db *fakeDB) BookingByID(_ context.Context, id string) (*models.Booking, error) {
	if b, ok := db.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (db *fakeDB) SetBookingStatus(_ context.Context, id, from, to string) (*models.Booking, error) {
	b, ok := db.bookings[id]
	if !ok || b.Status != from {
		return nil, store.ErrNotFound
	}
	b.Status = to
	cp := *b
	return &cp, nil
}

func (db *fakeDB) HasPendingBooking(_ context.Context, doctorID primitive.ObjectID, date, timeOfDay string) (bool, error) {
	for _, b := range db.bookings {
		if b.DoctorID == doctorID && b.Date == date && b.Time == timeOfDay && b.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (db *fakeDB) BookingsForPatient(_ context.Context, patientID string) ([]models.PatientBooking, error) {
	var out []models.PatientBooking
	for _, b := range db.bookings {
		if b.PatientID.Hex() != patientID {
			continue
		}
		pb := models.PatientBooking{Booking: *b}
		if d, ok := db.doctors[b.DoctorID.Hex()]; ok {
			pb.Doctor = d.Summary()
		}
		out = append(out, pb)
	}
	return out, nil
}

// identity sources over the fakeDB, in the production precedence order.

type fakeSource struct {
	role    string
	byEmail func(string) *identity.Account
	byID    func(string) *identity.Account
}

func (f fakeSource) Role() string { return f.role }

func (f fakeSource) AccountByEmail(_ context.Context, email string) (*identity.Account, error) {
	if a := f.byEmail(email); a != nil {
		return a, nil
	}
	return nil, identity.ErrNoAccount
}

func (f fakeSource) AccountByID(_ context.Context, id string) (*identity.Account, error) {
	if a := f.byID(id); a != nil {
		return a, nil
	}
	return nil, identity.ErrNoAccount
}

func (db *fakeDB) accountSources() []identity.Source {
	doctorAccount := func(d *models.Doctor) *identity.Account {
		return &identity.Account{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, PasswordHash: d.Password, Role: models.RoleDoctor}
	}
	patientAccount := func(u *models.User) *identity.Account {
		return &identity.Account{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, PasswordHash: u.Password, Role: models.RolePatient}
	}
	adminAccount := func(a *models.Admin) *identity.Account {
		return &identity.Account{ID: a.ID.Hex(), Name: a.Name, Email: a.Email, PasswordHash: a.Password, Role: models.RoleAdmin}
	}

	return []identity.Source{
		fakeSource{
			role: models.RoleDoctor,
			byEmail: func(email string) *identity.Account {
				for _, d := range db.doctors {
					if d.Email == email {
						return doctorAccount(d)
					}
				}
				return nil
			},
			byID: func(id string) *identity.Account {
				if d, ok := db.doctors[id]; ok {
					return doctorAccount(d)
				}
				return nil
			},
		},
		fakeSource{
			role: models.RolePatient,
			byEmail: func(email string) *identity.Account {
				for _, u := range db.users {
					if u.Email == email {
						return patientAccount(u)
					}
				}
				return nil
			},
			byID: func(id string) *identity.Account {
				if u, ok := db.users[id]; ok {
					return patientAccount(u)
				}
				return nil
			},
		},
		fakeSource{
			role: models.RoleAdmin,
			byEmail: func(email string) *identity.Account {
				for _, a := range db.admins {
					if a.Email == email {
						return adminAccount(a)
					}
				}
				return nil
			},
			byID: func(id string) *identity.Account {
				if a, ok := db.admins[id]; ok {
					return adminAccount(a)
				}
				return nil
			},
		},
	}
}

type fakeCheckout struct {
	err   error
	calls int
}

func (f *fakeCheckout) CreateCheckout(_ context.Context, _ payments.CheckoutParams) (*payments.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &payments.Session{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil
}

// ----- test environment -----

type env struct {
	db       *fakeDB
	checkout *fakeCheckout
	issuer   *auth.Issuer
	router   *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newFakeDB()
	checkout := &fakeCheckout{}
	issuer := auth.NewIssuer("test-secret", 15*24*time.Hour)
	resolver := identity.NewResolver(db.accountSources()...)
	bookings := booking.NewService(db, db, db, checkout, nil, "https://clinic.example")
	h := handlers.NewHandler(resolver, issuer, db, db, bookings)

	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/token-by-id", h.TokenByID)
	r.GET("/doctors", h.GetDoctors)
	r.GET("/doctors/:id", h.GetDoctor)
	r.PUT("/doctors/:id",
		middleware.Authenticate(issuer),
		middleware.Restrict(models.RoleDoctor, models.RoleAdmin),
		h.UpdateDoctor)
	r.PATCH("/doctors/approve/:id",
		middleware.Authenticate(issuer),
		middleware.Restrict(models.RoleAdmin),
		h.ApproveDoctor)

	appointments := r.Group("/appointments")
	appointments.Use(middleware.Authenticate(issuer))
	{
		appointments.GET("", middleware.Restrict(models.RolePatient), h.GetAppointments)
		appointments.POST("/checkout/:doctorId", middleware.Restrict(models.RolePatient), h.Checkout)
		appointments.PATCH("/complete/:id", h.CompleteAppointment)
		appointments.PATCH("/cancel/:id", h.CancelAppointment)
	}

	return &env{db: db, checkout: checkout, issuer: issuer, router: r}
}

func (e *env) addPatient(t *testing.T, email, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Patient Name",
		Email:    email,
		Password: hashed,
		Role:     models.RolePatient,
	}
	e.db.users[u.ID.Hex()] = u
	return u
}

func (e *env) addDoctor(t *testing.T, email string, price int64) *models.Doctor {
	t.Helper()
	hashed, err := auth.HashPassword("doctorpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d := &models.Doctor{
		ID:          primitive.NewObjectID(),
		Name:        "Dr. Smith",
		Email:       email,
		Password:    hashed,
		Role:        models.RoleDoctor,
		Bio:         "A great doctor",
		Photo:       "https://example.com/photo.jpg",
		TicketPrice: price,
		IsApproved:  models.ApprovalApproved,
	}
	e.db.doctors[d.ID.Hex()] = d
	return d
}

func (e *env) addAdmin(t *testing.T, email string) *models.Admin {
	t.Helper()
	hashed, err := auth.HashPassword("adminpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	a := &models.Admin{
		ID:       primitive.NewObjectID(),
		Name:     "Admin",
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	e.db.admins[a.ID.Hex()] = a
	return a
}

func (e *env) token(t *testing.T, id, role string) string {
	t.Helper()
	token, err := e.issuer.Issue(id, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func futureDate() string {
	return time.Now().Add(48 * time.Hour).Format("2006-01-02")
}
