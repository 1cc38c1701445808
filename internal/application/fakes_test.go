package application

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lodgeworks/service-rentals/internal/domain"
	bookingDomain "github.com/lodgeworks/service-rentals/internal/domain/booking"
	propertyDomain "github.com/lodgeworks/service-rentals/internal/domain/property"
	userDomain "github.com/lodgeworks/service-rentals/internal/domain/user"
)

// In-memory repository fakes. They copy aggregates on read and write so the
// service under test observes persistence semantics, not shared pointers.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func copyBooking(b *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		b.ID(), b.PropertyID(), b.RenterID(), b.HostID(),
		b.Stay(), b.Status(), b.TotalPrice(),
		b.ConfirmedAt(), b.CanceledAt(),
		b.Version(), b.CreatedAt(), b.UpdatedAt(),
	)
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return copyBooking(b), nil
}

func (r *fakeBookingRepo) FindConfirmedByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.PropertyID() == propertyID && b.Status() == bookingDomain.StatusConfirmed {
			out = append(out, copyBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByRenterID(_ context.Context, renterID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.RenterID() == renterID {
			out = append(out, copyBooking(b))
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindByHostID(_ context.Context, hostID uuid.UUID, status *bookingDomain.BookingStatus, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.HostID() != hostID {
			continue
		}
		if status != nil && b.Status() != *status {
			continue
		}
		out = append(out, copyBooking(b))
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CountActiveByPropertyID(_ context.Context, propertyID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.PropertyID() == propertyID && !b.Status().IsTerminal() {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		out = append(out, copyBooking(b))
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, b := range r.bookings {
		counts[string(b.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID()] = copyBooking(b)
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[b.ID()]
	if !ok {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	if current.Version() != b.Version()-1 {
		return domain.NewConflictError("booking was modified concurrently")
	}
	r.bookings[b.ID()] = copyBooking(b)
	return nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*propertyDomain.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[uuid.UUID]*propertyDomain.Property)}
}

func copyProperty(p *propertyDomain.Property) *propertyDomain.Property {
	return propertyDomain.ReconstructProperty(
		p.ID(), p.HostID(),
		p.Title(), p.Description(), p.Location(),
		p.NightlyPrice(), p.Images(), p.Amenities(), p.PropertyType(),
		p.Version(), p.CreatedAt(), p.UpdatedAt(),
	)
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.NewNotFoundError("property", id.String())
	}
	return copyProperty(p), nil
}

func (r *fakePropertyRepo) FindByHostID(_ context.Context, hostID uuid.UUID) ([]*propertyDomain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*propertyDomain.Property
	for _, p := range r.properties {
		if p.HostID() == hostID {
			out = append(out, copyProperty(p))
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) List(_ context.Context, filter propertyDomain.ListFilter, page, limit int) ([]*propertyDomain.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*propertyDomain.Property
	for _, p := range r.properties {
		if filter.Location != "" && !strings.Contains(strings.ToLower(p.Location()), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.MinPrice != nil && p.NightlyPrice().LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.NightlyPrice().GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.PropertyType != "" && p.PropertyType() != filter.PropertyType {
			continue
		}
		if !containsAll(p.Amenities(), filter.Amenities) {
			continue
		}
		out = append(out, copyProperty(p))
	}
	return out, int64(len(out)), nil
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *fakePropertyRepo) Save(_ context.Context, p *propertyDomain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[p.ID()] = copyProperty(p)
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *propertyDomain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.properties[p.ID()]
	if !ok {
		return domain.NewNotFoundError("property", p.ID().String())
	}
	if current.Version() != p.Version()-1 {
		return domain.NewConflictError("property was modified concurrently")
	}
	r.properties[p.ID()] = copyProperty(p)
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return domain.NewNotFoundError("property", id.String())
	}
	delete(r.properties, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func copyUser(u *userDomain.User) *userDomain.User {
	return userDomain.ReconstructUser(
		u.ID(), u.Email(), u.Name(), u.Image(),
		u.Role(), u.Version(), u.CreatedAt(), u.UpdatedAt(),
	)
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return copyUser(u), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email() == email {
			return copyUser(u), nil
		}
	}
	return nil, domain.NewNotFoundError("user", email)
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = copyUser(u)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[u.ID()]
	if !ok {
		return domain.NewNotFoundError("user", u.ID().String())
	}
	if current.Version() != u.Version()-1 {
		return domain.NewConflictError("user was modified concurrently")
	}
	r.users[u.ID()] = copyUser(u)
	return nil
}
