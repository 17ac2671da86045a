package services

import (
	"errors"
	"testing"

	"roomease-server/models"
)

func TestSubmitListingRequiresLandlord(t *testing.T) {
	db := newTestDB(t)
	tenant := createUser(t, db, "tenant", models.RoleTenant)

	moderation := NewModerationService(db, NewNotificationService(db, nil))
	_, err := moderation.Submit(tenant, SubmitListingInput{Title: "Flat", Location: "York"})
	if !errors.Is(err, ErrForbiddenRole) {
		t.Fatalf("want ErrForbiddenRole, got %v", err)
	}
}

func TestSubmitListingStartsPending(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)

	moderation := NewModerationService(db, NewNotificationService(db, nil))
	listing, err := moderation.Submit(landlord, SubmitListingInput{Title: "Flat", Location: "York"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if listing.Status != models.ListingPending {
		t.Fatalf("want pending, got %s", listing.Status)
	}
}

func TestApproveNotifiesLandlordOnce(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	listing := createListing(t, db, landlord.ID, models.ListingPending)

	moderation := NewModerationService(db, NewNotificationService(db, nil))
	approved, err := moderation.Approve(admin, listing.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.ListingApproved {
		t.Fatalf("want approved, got %s", approved.Status)
	}

	notifications := notificationsFor(t, db, landlord.ID)
	if len(notifications) != 1 {
		t.Fatalf("want exactly 1 notification, got %d", len(notifications))
	}
	if notifications[0].Type != models.NotificationListingApproved {
		t.Fatalf("want listing_approved, got %s", notifications[0].Type)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	listing := createListing(t, db, landlord.ID, models.ListingPending)

	moderation := NewModerationService(db, NewNotificationService(db, nil))
	if _, err := moderation.Reject(admin, listing.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for blank reason, got %v", err)
	}

	rejected, err := moderation.Reject(admin, listing.ID, "duplicate of another listing")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.RejectionReason != "duplicate of another listing" {
		t.Fatalf("reason not recorded: %q", rejected.RejectionReason)
	}
}

func TestDecisionIsTerminal(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	listing := createListing(t, db, landlord.ID, models.ListingPending)

	moderation := NewModerationService(db, NewNotificationService(db, nil))
	if _, err := moderation.Approve(admin, listing.ID); err != nil {
		t.Fatalf("first decision: %v", err)
	}
	if _, err := moderation.Reject(admin, listing.ID, "changed my mind"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition on second decision, got %v", err)
	}
	if _, err := moderation.Approve(admin, listing.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition on repeat approve, got %v", err)
	}

	// The losing decision must not have fired a second fan-out.
	if got := len(notificationsFor(t, db, landlord.ID)); got != 1 {
		t.Fatalf("want 1 notification after repeated decisions, got %d", got)
	}
}

func TestOnlyAdminsDecide(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	listing := createListing(t, db, landlord.ID, models.ListingPending)

	moderation := NewModerationService(db, NewNotificationService(db, nil))
	if _, err := moderation.Approve(landlord, listing.ID); !errors.Is(err, ErrForbiddenRole) {
		t.Fatalf("want ErrForbiddenRole, got %v", err)
	}
}

func TestHiddenListingLooksMissing(t *testing.T) {
	db := newTestDB(t)
	landlord := createUser(t, db, "landlord", models.RoleLandlord)
	tenant := createUser(t, db, "tenant", models.RoleTenant)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	listing := createListing(t, db, landlord.ID, models.ListingPending)

	listings := NewListingService(db)
	if _, err := listings.Get(tenant, listing.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for stranger, got %v", err)
	}
	if _, err := listings.Get(landlord, listing.ID); err != nil {
		t.Fatalf("owner should see own pending listing: %v", err)
	}
	if _, err := listings.Get(admin, listing.ID); err != nil {
		t.Fatalf("admin should see pending listing: %v", err)
	}
}
