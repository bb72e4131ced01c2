package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/persistence"
)

// fakeProfileRepo mimics the Postgres upsert semantics: the conflict
// update path never touches the stored role.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
	getErr   error
	writeErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if existing, ok := f.profiles[profile.SubjectID]; ok {
		if profile.Email == "" {
			profile.Email = existing.Email
		}
		if profile.Name == "" {
			profile.Name = existing.Name
		}
		if profile.Phone == "" {
			profile.Phone = existing.Phone
		}
		if profile.PasswordHash == "" {
			profile.PasswordHash = existing.PasswordHash
		}
		profile.Role = existing.Role
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = now
	} else {
		profile.CreatedAt = now
		profile.UpdatedAt = now
	}
	stored := *profile
	f.profiles[profile.SubjectID] = &stored
	return nil
}

func (f *fakeProfileRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[subjectID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, profile := range f.profiles {
		if profile.Email == email {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfileRepo) PromoteRole(ctx context.Context, subjectID string, from, to domain.Role) (bool, error) {
	if f.writeErr != nil {
		return false, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[subjectID]
	if !ok || profile.Role != from {
		return false, nil
	}
	profile.Role = to
	profile.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeProfileRepo) UpdatePasswordHash(ctx context.Context, subjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[subjectID]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.PasswordHash = hash
	return nil
}

func (f *fakeProfileRepo) seed(profile domain.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.SubjectID] = &profile
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*domain.Reservation
	getErr       error
	createErr    error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*domain.Reservation)}
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	stored := *reservation
	f.reservations[reservation.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *reservation
	return &copied, nil
}

func (f *fakeReservationRepo) ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Reservation
	for _, reservation := range f.reservations {
		if reservation.SubjectID == subjectID {
			result = append(result, *reservation)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	reservation.Status = status
	return nil
}

func (f *fakeReservationRepo) seed(reservation domain.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations[reservation.ID] = &reservation
}

type fakePaymentRepo struct {
	mu          sync.Mutex
	payments    map[string]*domain.ReservationPayment
	completeErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*domain.ReservationPayment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *domain.ReservationPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.CreatedAt = time.Now()
	stored := *payment
	f.payments[payment.ID] = &stored
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*domain.ReservationPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) ListByReservation(ctx context.Context, reservationID string) ([]domain.ReservationPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ReservationPayment
	for _, payment := range f.payments {
		if payment.ReservationID == reservationID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (f *fakePaymentRepo) MarkCompleted(ctx context.Context, id string) (*domain.ReservationPayment, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	payment.Status = domain.PaymentStatusCompleted
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) seed(payment domain.ReservationPayment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[payment.ID] = &payment
}

type fakeQuoteRepo struct {
	mu          sync.Mutex
	quotes      map[string]*domain.Quote
	markPaidErr error
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[string]*domain.Quote)}
}

func (f *fakeQuoteRepo) Create(ctx context.Context, quote *domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now
	stored := *quote
	f.quotes[quote.ID] = &stored
	return nil
}

func (f *fakeQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quote, ok := f.quotes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *quote
	return &copied, nil
}

func (f *fakeQuoteRepo) MarkPaid(ctx context.Context, id string) error {
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	quote, ok := f.quotes[id]
	if !ok {
		return pgx.ErrNoRows
	}
	quote.PaymentStatus = domain.QuotePaid
	quote.UpdatedAt = time.Now()
	return nil
}

func (f *fakeQuoteRepo) seed(quote domain.Quote) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes[quote.ID] = &quote
}

type fakeDeadLetter struct {
	mu       sync.Mutex
	recorded []persistence.CascadeFailure
	err      error
}

func (f *fakeDeadLetter) Record(ctx context.Context, failure persistence.CascadeFailure) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, failure)
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) eventsOfType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
