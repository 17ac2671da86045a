package services

import (
	"errors"
	"testing"

	"roomease-server/models"
)

func TestCannotBookUnapprovedListing(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingPending)

	bookings := NewBookingService(db, NewNotificationService(db, nil))
	if _, err := bookings.Create(tenant, listing.ID, "hi"); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction, got %v", err)
	}
}

func TestCannotBookOwnListing(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	bookings := NewBookingService(db, NewNotificationService(db, nil))
	if _, err := bookings.Create(landlord, listing.ID, "me please"); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction, got %v", err)
	}
}

func TestOneActiveRequestPerListing(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	bookings := NewBookingService(db, NewNotificationService(db, nil))
	request, err := bookings.Create(tenant, listing.ID, "first")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := bookings.Create(tenant, listing.ID, "second"); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("want ErrDuplicateRequest, got %v", err)
	}

	// A rejected request no longer blocks; the tenant may try again.
	if _, err := bookings.Reject(landlord, request.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := bookings.Create(tenant, listing.ID, "third"); err != nil {
		t.Fatalf("create after rejection: %v", err)
	}
}

func TestApproveStampsAndNotifiesTenant(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	bookings := NewBookingService(db, NewNotificationService(db, nil))
	request, err := bookings.Create(tenant, listing.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	approved, err := bookings.Approve(landlord, request.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.BookingApproved {
		t.Fatalf("want approved, got %s", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Fatal("ApprovedAt not stamped")
	}

	notifications := notificationsFor(t, db, tenant.ID)
	if len(notifications) != 1 || notifications[0].Type != models.NotificationBookingApproved {
		t.Fatalf("want one booking_approved notification, got %+v", notifications)
	}
}

func TestBookingDecisionIsTerminal(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	bookings := NewBookingService(db, NewNotificationService(db, nil))
	request, _ := bookings.Create(tenant, listing.ID, "hello")

	if _, err := bookings.Approve(landlord, request.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := bookings.Reject(landlord, request.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if got := len(notificationsFor(t, db, tenant.ID)); got != 1 {
		t.Fatalf("want 1 notification after repeated decisions, got %d", got)
	}
}

func TestOnlyOwningLandlordDecides(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	other := createUser(t, db, "other-landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	bookings := NewBookingService(db, NewNotificationService(db, nil))
	request, _ := bookings.Create(tenant, listing.ID, "hello")

	if _, err := bookings.Approve(other, request.ID); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction, got %v", err)
	}
	if _, err := bookings.Approve(tenant, request.ID); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("want ErrForbiddenAction for tenant, got %v", err)
	}
}

func TestStatusForListing(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	listing := createListing(t, db, landlord.ID, models.ListingApproved)

	bookings := NewBookingService(db, NewNotificationService(db, nil))

	has, _, err := bookings.StatusForListing(tenant, listing.ID)
	if err != nil || has {
		t.Fatalf("want no request yet, got has=%v err=%v", has, err)
	}

	request, _ := bookings.Create(tenant, listing.ID, "hello")
	has, status, err := bookings.StatusForListing(tenant, listing.ID)
	if err != nil || !has || status != models.BookingPending {
		t.Fatalf("want pending request, got has=%v status=%s err=%v", has, status, err)
	}

	// Rejected requests stop counting.
	if _, err := bookings.Reject(landlord, request.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	has, _, err = bookings.StatusForListing(tenant, listing.ID)
	if err != nil || has {
		t.Fatalf("want no active request after rejection, got has=%v err=%v", has, err)
	}
}
