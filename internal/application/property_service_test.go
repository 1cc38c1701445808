package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lodgeworks/service-rentals/internal/domain"
	bookingDomain "github.com/lodgeworks/service-rentals/internal/domain/booking"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type propertyFixture struct {
	service  *PropertyService
	bookings *fakeBookingRepo
	hostID   uuid.UUID
}

func newPropertyFixture(t *testing.T) *propertyFixture {
	t.Helper()
	bookings := newFakeBookingRepo()
	properties := newFakePropertyRepo()
	service := NewPropertyService(properties, bookings, nil, nil, zap.NewNop())
	return &propertyFixture{service: service, bookings: bookings, hostID: uuid.New()}
}

func validCreateRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		Title:        "Sunny Loft",
		Description:  "Bright open-plan loft.",
		Location:     "Lisbon, Portugal",
		NightlyPrice: "120.00",
		Images:       []string{"a.jpg"},
		Amenities:    []string{"wifi", "kitchen"},
		PropertyType: "apartment",
	}
}

func TestPropertyService_CreateProperty(t *testing.T) {
	f := newPropertyFixture(t)

	dto, err := f.service.CreateProperty(context.Background(), f.hostID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, f.hostID, dto.HostID)
	assert.Equal(t, "120.00", dto.NightlyPrice)
	assert.Equal(t, "apartment", dto.PropertyType)
}

func TestPropertyService_CreateProperty_InvalidPrice(t *testing.T) {
	f := newPropertyFixture(t)
	var valErr *domain.ValidationError

	req := validCreateRequest()
	req.NightlyPrice = "free"
	_, err := f.service.CreateProperty(context.Background(), f.hostID, req)
	assert.True(t, errors.As(err, &valErr))

	req.NightlyPrice = "-5.00"
	_, err = f.service.CreateProperty(context.Background(), f.hostID, req)
	assert.True(t, errors.As(err, &valErr))
}

func TestPropertyService_UpdateProperty_OwnerOnly(t *testing.T) {
	f := newPropertyFixture(t)
	ctx := context.Background()

	dto, err := f.service.CreateProperty(ctx, f.hostID, validCreateRequest())
	require.NoError(t, err)

	updated, err := f.service.UpdateProperty(ctx, dto.ID, f.hostID, UpdatePropertyRequest{Title: "Sunnier Loft"})
	require.NoError(t, err)
	assert.Equal(t, "Sunnier Loft", updated.Title)
	assert.Equal(t, dto.Description, updated.Description)

	var forbidden *domain.ForbiddenError
	_, err = f.service.UpdateProperty(ctx, dto.ID, uuid.New(), UpdatePropertyRequest{Title: "Hijacked"})
	assert.True(t, errors.As(err, &forbidden))
}

func TestPropertyService_DeleteProperty(t *testing.T) {
	f := newPropertyFixture(t)
	ctx := context.Background()

	dto, err := f.service.CreateProperty(ctx, f.hostID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteProperty(ctx, dto.ID, f.hostID))

	var notFound *domain.NotFoundError
	_, err = f.service.GetProperty(ctx, dto.ID)
	assert.True(t, errors.As(err, &notFound))
}

func TestPropertyService_DeleteProperty_BlockedByActiveBookings(t *testing.T) {
	f := newPropertyFixture(t)
	ctx := context.Background()

	dto, err := f.service.CreateProperty(ctx, f.hostID, validCreateRequest())
	require.NoError(t, err)

	stay, err := bookingDomain.ParseStay("2030-06-01", "2030-06-05")
	require.NoError(t, err)
	bk, err := bookingDomain.NewBooking(dto.ID, uuid.New(), f.hostID, stay, decimalFromString(t, "480.00"))
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(ctx, bk))

	var conflict *domain.ConflictError
	err = f.service.DeleteProperty(ctx, dto.ID, f.hostID)
	assert.True(t, errors.As(err, &conflict), "pending booking blocks deletion")

	// Cancel the only booking, deletion proceeds.
	require.NoError(t, bk.Cancel(bk.RenterID()))
	bk.IncrementVersion()
	require.NoError(t, f.bookings.Update(ctx, bk))
	assert.NoError(t, f.service.DeleteProperty(ctx, dto.ID, f.hostID))
}

func TestPropertyService_GetProperty_IncludesConfirmedIntervals(t *testing.T) {
	f := newPropertyFixture(t)
	ctx := context.Background()

	dto, err := f.service.CreateProperty(ctx, f.hostID, validCreateRequest())
	require.NoError(t, err)

	stay, err := bookingDomain.ParseStay("2030-06-01", "2030-06-05")
	require.NoError(t, err)
	bk, err := bookingDomain.NewBooking(dto.ID, uuid.New(), f.hostID, stay, decimalFromString(t, "480.00"))
	require.NoError(t, err)
	require.NoError(t, bk.Confirm(f.hostID))
	require.NoError(t, f.bookings.Save(ctx, bk))

	detail, err := f.service.GetProperty(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, detail.BookedIntervals, 1)
	assert.Equal(t, stay.CheckIn(), detail.BookedIntervals[0].CheckIn)
	assert.Equal(t, stay.CheckOut(), detail.BookedIntervals[0].CheckOut)
}

func TestPropertyService_ListProperties_Filters(t *testing.T) {
	f := newPropertyFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateProperty(ctx, f.hostID, validCreateRequest())
	require.NoError(t, err)

	cabin := validCreateRequest()
	cabin.Title = "Lakeside Cabin"
	cabin.Location = "Bled, Slovenia"
	cabin.NightlyPrice = "95.50"
	cabin.PropertyType = "cabin"
	cabin.Amenities = []string{"wifi", "fireplace"}
	_, err = f.service.CreateProperty(ctx, uuid.New(), cabin)
	require.NoError(t, err)

	page, err := f.service.ListProperties(ctx, ListPropertiesQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.service.ListProperties(ctx, ListPropertiesQuery{Location: "lisbon", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sunny Loft", page.Items[0].Title)

	page, err = f.service.ListProperties(ctx, ListPropertiesQuery{MaxPrice: "100.00", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Lakeside Cabin", page.Items[0].Title)

	page, err = f.service.ListProperties(ctx, ListPropertiesQuery{Amenities: []string{"wifi", "fireplace"}, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Lakeside Cabin", page.Items[0].Title)

	var valErr *domain.ValidationError
	_, err = f.service.ListProperties(ctx, ListPropertiesQuery{MinPrice: "cheap", Page: 1, Limit: 20})
	assert.True(t, errors.As(err, &valErr))
}

func TestPropertyService_GetHostProperties(t *testing.T) {
	f := newPropertyFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateProperty(ctx, f.hostID, validCreateRequest())
	require.NoError(t, err)
	_, err = f.service.CreateProperty(ctx, uuid.New(), validCreateRequest())
	require.NoError(t, err)

	own, err := f.service.GetHostProperties(ctx, f.hostID)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}
