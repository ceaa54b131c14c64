package handlers

import (
	"testing"

	"rentloBack/internal/models"
)

func TestValidateSignup(t *testing.T) {
	if errs := validateSignup("jon_doe", "jon@example.com", "secret12", "secret12"); len(errs) != 0 {
		t.Fatalf("expected valid signup, got %v", errs)
	}

	errs := validateSignup("", "", "", "")
	for _, field := range []string{"handle", "email", "password"} {
		if errs[field] != "Please complete this field" {
			t.Errorf("expected empty-field message for %s, got %q", field, errs[field])
		}
	}

	errs = validateSignup(".jon", "jon@example.com", "secret12", "secret12")
	if errs["handle"] == "" {
		t.Error("expected handle starting with a dot to be rejected")
	}
	errs = validateSignup("jo", "jon@example.com", "secret12", "secret12")
	if errs["handle"] == "" {
		t.Error("expected too-short handle to be rejected")
	}

	errs = validateSignup("jon_doe", "not-an-email", "secret12", "secret12")
	if errs["email"] != "Please enter a valid email" {
		t.Errorf("expected invalid email message, got %q", errs["email"])
	}

	errs = validateSignup("jon_doe", "jon@example.com", "secret12", "other")
	if errs["confirmPassword"] != "Passwords don't match" {
		t.Errorf("expected mismatch message, got %q", errs["confirmPassword"])
	}
}

func TestValidateUserDetails(t *testing.T) {
	user := models.User{
		FullName: "Jon Doe",
		Location: models.Location{
			Address:  "12 Beach Rd",
			Postcode: "10450",
			City:     "George Town",
			State:    "Penang",
		},
		Contact: models.Contact{PhoneNo: "012-3456789"},
	}

	if errs := validateUserDetails(&user); len(errs) != 0 {
		t.Fatalf("expected valid details, got %v", errs)
	}
	if user.Contact.PhoneNo != "60123456789" {
		t.Errorf("expected normalised phone number, got %q", user.Contact.PhoneNo)
	}

	bad := user
	bad.Location.Postcode = "104"
	if errs := validateUserDetails(&bad); errs["postcode"] != "Please enter a valid Malaysia postcode" {
		t.Errorf("expected postcode rejection, got %v", errs)
	}

	bad = user
	bad.Contact.PhoneNo = "12345"
	if errs := validateUserDetails(&bad); errs["phoneNo"] != "Please enter a valid phone number" {
		t.Errorf("expected phone rejection, got %v", errs)
	}
}

func TestNormalizePhoneNo(t *testing.T) {
	if got := normalizePhoneNo("+6012-3456789"); got != "60123456789" {
		t.Errorf("expected 60123456789, got %q", got)
	}
	if got := normalizePhoneNo("0198765432"); got != "60198765432" {
		t.Errorf("expected country prefix added, got %q", got)
	}
}

func TestReduceProfileURL(t *testing.T) {
	if got := reduceProfileURL("https://www.facebook.com/jon.doe/", "facebook.com"); got != "jon.doe" {
		t.Errorf("expected bare username, got %q", got)
	}
	if got := reduceProfileURL("jon.doe", "facebook.com"); got != "jon.doe" {
		t.Errorf("expected plain username untouched, got %q", got)
	}
}

func TestValidatePost(t *testing.T) {
	post := models.Post{Name: "Drill", Description: "18V", Image: "https://img", Price: 12.5}
	if errs := validatePost(post); len(errs) != 0 {
		t.Fatalf("expected valid post, got %v", errs)
	}

	if errs := validatePost(models.Post{}); len(errs) != 4 {
		t.Fatalf("expected every field flagged, got %v", errs)
	}

	post.Price = 1000000
	if errs := validatePost(post); errs["price"] != "Lower!" {
		t.Errorf("expected price cap message, got %v", errs)
	}
}
