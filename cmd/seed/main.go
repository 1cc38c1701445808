package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lodgeworks/service-rentals/internal/config"
	"github.com/lodgeworks/service-rentals/internal/database"
	bookingDomain "github.com/lodgeworks/service-rentals/internal/domain/booking"
	propertyDomain "github.com/lodgeworks/service-rentals/internal/domain/property"
	userDomain "github.com/lodgeworks/service-rentals/internal/domain/user"
	"github.com/lodgeworks/service-rentals/internal/logger"
	"github.com/lodgeworks/service-rentals/internal/repository"
)

// Seeds the database with a demo host, renter, a few listings and bookings.
// Intended for local development only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "service-rentals-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&repository.UserModel{},
		&repository.PropertyModel{},
		&repository.BookingModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repository.NewGormUserRepository(db)
	propertyRepo := repository.NewGormPropertyRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	host, err := userDomain.NewUser("host@example.com", "Harriet Host", "")
	if err != nil {
		log.Fatal("failed to build host user", zap.Error(err))
	}
	if err := host.AssignRole(userDomain.RoleHost); err != nil {
		log.Fatal("failed to assign host role", zap.Error(err))
	}
	if err := userRepo.Save(ctx, host); err != nil {
		log.Fatal("failed to save host user", zap.Error(err))
	}

	renter, err := userDomain.NewUser("renter@example.com", "Rafael Renter", "")
	if err != nil {
		log.Fatal("failed to build renter user", zap.Error(err))
	}
	if err := renter.AssignRole(userDomain.RoleRenter); err != nil {
		log.Fatal("failed to assign renter role", zap.Error(err))
	}
	if err := userRepo.Save(ctx, renter); err != nil {
		log.Fatal("failed to save renter user", zap.Error(err))
	}

	seedProperties := []struct {
		title        string
		description  string
		location     string
		nightlyPrice string
		propertyType propertyDomain.PropertyType
		images       []string
		amenities    []string
	}{
		{
			title:        "Sunny Loft Downtown",
			description:  "Bright open-plan loft a short walk from the old town square.",
			location:     "Lisbon, Portugal",
			nightlyPrice: "120.00",
			propertyType: propertyDomain.TypeApartment,
			images:       []string{"https://images.example.com/loft-1.jpg"},
			amenities:    []string{"wifi", "kitchen", "air_conditioning"},
		},
		{
			title:        "Lakeside Cabin",
			description:  "Quiet wooden cabin with a private dock and wood stove.",
			location:     "Bled, Slovenia",
			nightlyPrice: "95.50",
			propertyType: propertyDomain.TypeCabin,
			images:       []string{"https://images.example.com/cabin-1.jpg"},
			amenities:    []string{"wifi", "fireplace", "parking"},
		},
		{
			title:        "Cliffside Villa",
			description:  "Four bedroom villa overlooking the sea, with an infinity pool.",
			location:     "Santorini, Greece",
			nightlyPrice: "480.00",
			propertyType: propertyDomain.TypeVilla,
			images:       []string{"https://images.example.com/villa-1.jpg", "https://images.example.com/villa-2.jpg"},
			amenities:    []string{"wifi", "pool", "kitchen", "parking"},
		},
	}

	properties := make([]*propertyDomain.Property, 0, len(seedProperties))
	for _, sp := range seedProperties {
		price, err := decimal.NewFromString(sp.nightlyPrice)
		if err != nil {
			log.Fatal("invalid seed price", zap.Error(err))
		}
		prop, err := propertyDomain.NewProperty(
			host.ID(), sp.title, sp.description, sp.location,
			price, sp.images, sp.amenities, sp.propertyType,
		)
		if err != nil {
			log.Fatal("failed to build property", zap.String("title", sp.title), zap.Error(err))
		}
		if err := propertyRepo.Save(ctx, prop); err != nil {
			log.Fatal("failed to save property", zap.String("title", sp.title), zap.Error(err))
		}
		properties = append(properties, prop)
	}

	pricing := bookingDomain.NewStandardPricingStrategy()

	// One confirmed stay next month and one pending request after it.
	firstCheckIn := time.Now().AddDate(0, 1, 0)
	stays := []struct {
		property *propertyDomain.Property
		checkIn  time.Time
		nights   int
		confirm  bool
	}{
		{property: properties[0], checkIn: firstCheckIn, nights: 4, confirm: true},
		{property: properties[1], checkIn: firstCheckIn.AddDate(0, 0, 10), nights: 3, confirm: false},
	}

	for _, s := range stays {
		stay, err := bookingDomain.NewStay(s.checkIn, s.checkIn.AddDate(0, 0, s.nights))
		if err != nil {
			log.Fatal("failed to build stay", zap.Error(err))
		}
		total, err := pricing.Quote(stay, s.property.NightlyPrice())
		if err != nil {
			log.Fatal("failed to price stay", zap.Error(err))
		}
		bk, err := bookingDomain.NewBooking(s.property.ID(), renter.ID(), host.ID(), stay, total)
		if err != nil {
			log.Fatal("failed to build booking", zap.Error(err))
		}
		if s.confirm {
			if err := bk.Confirm(host.ID()); err != nil {
				log.Fatal("failed to confirm booking", zap.Error(err))
			}
		}
		if err := bookingRepo.Save(ctx, bk); err != nil {
			log.Fatal("failed to save booking", zap.Error(err))
		}
	}

	log.Info("seed completed",
		zap.String("host_email", "host@example.com"),
		zap.String("renter_email", "renter@example.com"),
		zap.Int("properties", len(properties)),
		zap.Int("bookings", len(stays)),
	)
}
