package storefront

import (
	"context"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/Domenick1991/eventra/internal/payment"
	"github.com/Domenick1991/eventra/internal/service/booking"
	"github.com/Domenick1991/eventra/internal/service/cart"
	"github.com/Domenick1991/eventra/internal/service/checkout"
	"github.com/Domenick1991/eventra/internal/service/identity"
	"github.com/Domenick1991/eventra/internal/store"
	"github.com/sirupsen/logrus"
)

const EventCartUpdated = "cart.updated"

// Event is pushed to a profile's listeners after a state change.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Notifier interface {
	Notify(profileID string, event Event)
}

// Deps is everything an App needs besides its own session store.
type Deps struct {
	Payments           payment.Processor
	Producer           booking.Producer
	BookingTopic       string
	NotificationsTopic string
	StrictTransitions  bool
	CartScope          cart.Scope
	BcryptCost         int
	Notifier           Notifier
	Logger             logrus.FieldLogger
}

// App is the state of one browser profile: the managers bound to its session store.
type App struct {
	ProfileID string
	Identity  identity.IdentityUseCase
	Cart      cart.CartUseCase
	Bookings  booking.BookingUseCase
	Checkout  checkout.CheckoutUseCase
}

func New(profileID string, session *store.SessionStore, deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("profile_id", profileID)

	identityOpts := []identity.ServiceOption{identity.WithLogger(log)}
	if deps.BcryptCost > 0 {
		identityOpts = append(identityOpts, identity.WithBcryptCost(deps.BcryptCost))
	}
	identitySvc := identity.NewService(session, identityOpts...)

	var cartOpts []cart.ServiceOption
	if deps.CartScope == cart.ScopeSession {
		cartOpts = append(cartOpts, cart.WithSessionScope(identitySvc))
	}
	if deps.Notifier != nil {
		notifier := deps.Notifier
		cartOpts = append(cartOpts, cart.WithChangeListener(func(_ context.Context, summary domain.CartSummary) {
			notifier.Notify(profileID, Event{Type: EventCartUpdated, Payload: summary})
		}))
	}
	cartSvc := cart.NewService(session, cartOpts...)

	bookingOpts := []booking.BookingServiceOption{booking.WithLogger(log)}
	if deps.Producer != nil {
		bookingOpts = append(bookingOpts,
			booking.WithProducer(deps.Producer, deps.BookingTopic),
			booking.WithNotificationsTopic(deps.NotificationsTopic),
		)
	}
	if deps.StrictTransitions {
		bookingOpts = append(bookingOpts, booking.WithStrictTransitions())
	}
	bookingSvc := booking.NewBookingService(session, identitySvc, bookingOpts...)

	payments := deps.Payments
	if payments == nil {
		payments = payment.NewSimulator(payment.DefaultDelay, payment.DefaultSuccessRate, payment.WithLogger(log))
	}

	return &App{
		ProfileID: profileID,
		Identity:  identitySvc,
		Cart:      cartSvc,
		Bookings:  bookingSvc,
		Checkout:  checkout.NewService(identitySvc, cartSvc, bookingSvc, payments, checkout.WithLogger(log)),
	}
}
