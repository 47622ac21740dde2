package service

import (
	"context"
	"sync"
	"time"

	"github.com/campusbook/venue-booking/internal/admission"
	"github.com/campusbook/venue-booking/internal/entity"
)

// In-memory repositories mirroring the postgres layer's semantics: the
// booking fake runs admission under a per-store mutex the same way the
// real one runs it under the venue row lock.

type fakeVenueRepo struct {
	mu     sync.Mutex
	nextID int64
	venues map[int64]*entity.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{nextID: 1, venues: make(map[int64]*entity.Venue)}
}

func (r *fakeVenueRepo) Create(_ context.Context, venue *entity.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue.ID = r.nextID
	r.nextID++
	copied := *venue
	r.venues[venue.ID] = &copied
	return nil
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id int64) (*entity.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return nil, entity.ErrVenueNotFound
	}
	copied := *venue
	return &copied, nil
}

func (r *fakeVenueRepo) GetAll(_ context.Context) ([]*entity.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var venues []*entity.Venue
	for _, v := range r.venues {
		copied := *v
		venues = append(venues, &copied)
	}
	return venues, nil
}

func (r *fakeVenueRepo) Update(_ context.Context, venue *entity.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; !ok {
		return entity.ErrVenueNotFound
	}
	copied := *venue
	r.venues[venue.ID] = &copied
	return nil
}

func (r *fakeVenueRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[id]; !ok {
		return entity.ErrVenueNotFound
	}
	delete(r.venues, id)
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*entity.Booking
	venues   *fakeVenueRepo
}

func newFakeBookingRepo(venues *fakeVenueRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		nextID:   1,
		bookings: make(map[int64]*entity.Booking),
		venues:   venues,
	}
}

func (r *fakeBookingRepo) blockingForVenueLocked(venueID int64) []*entity.Booking {
	var blocking []*entity.Booking
	for _, b := range r.bookings {
		if b.VenueID == venueID && b.Status.Blocking() {
			copied := *b
			blocking = append(blocking, &copied)
		}
	}
	return blocking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.venues != nil {
		if _, ok := r.venues.venues[booking.VenueID]; !ok {
			return entity.ErrVenueNotFound
		}
	}

	err := admission.Evaluate(admission.Candidate{
		VenueID:   booking.VenueID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	}, r.blockingForVenueLocked(booking.VenueID))
	if err != nil {
		return err
	}

	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) GetAll(_ context.Context) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []*entity.Booking
	for _, b := range r.bookings {
		copied := *b
		bookings = append(bookings, &copied)
	}
	return bookings, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			copied := *b
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) GetByVenueID(_ context.Context, venueID int64) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []*entity.Booking
	for _, b := range r.bookings {
		if b.VenueID == venueID {
			copied := *b
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) GetByStatus(_ context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []*entity.Booking
	for _, b := range r.bookings {
		if b.Status == status {
			copied := *b
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) GetBlockingByVenue(_ context.Context, venueID int64) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockingForVenueLocked(venueID), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status entity.BookingStatus) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, entity.ErrInvalidTransition
	}

	if status == entity.BookingStatusApproved {
		err := admission.Evaluate(admission.Candidate{
			VenueID:          booking.VenueID,
			StartTime:        booking.StartTime,
			EndTime:          booking.EndTime,
			ExcludeBookingID: booking.ID,
		}, r.blockingForVenueLocked(booking.VenueID))
		if err != nil {
			return nil, err
		}
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateDetails(_ context.Context, id int64, eventName string, start, end time.Time) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	if booking.Status.Terminal() {
		return nil, entity.ErrInvalidTransition
	}

	err := admission.Evaluate(admission.Candidate{
		VenueID:          booking.VenueID,
		StartTime:        start,
		EndTime:          end,
		ExcludeBookingID: booking.ID,
	}, r.blockingForVenueLocked(booking.VenueID))
	if err != nil {
		return nil, err
	}

	booking.EventName = eventName
	booking.StartTime = start
	booking.EndTime = end
	booking.UpdatedAt = time.Now()
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return entity.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) RejectStalePending(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, b := range r.bookings {
		if b.Status == entity.BookingStatusPending && b.StartTime.Before(before) {
			b.Status = entity.BookingStatusRejected
			b.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return entity.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return entity.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Email == user.Email && u.ID != user.ID {
			return entity.ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*entity.User
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}
