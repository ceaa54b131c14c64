package handlers

import (
	"regexp"
	"strings"

	"rentloBack/internal/models"
)

var (
	handleRegex   = regexp.MustCompile(`^[a-zA-Z0-9._]{4,20}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)
	fullNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s'-]{3,}$`)
	phoneNoRegex  = regexp.MustCompile(`^(\+?6?01)[0-46-9]-?[0-9]{7,8}$`)
	digitsRegex   = regexp.MustCompile(`[0-9]+`)
	postcodeRegex = regexp.MustCompile(`^[0-9]{5}$`)
)

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateSignup returns field-keyed error messages, empty when valid.
func validateSignup(handle, email, password, confirmPassword string) map[string]string {
	errs := map[string]string{}

	if isEmpty(handle) {
		errs["handle"] = "Please complete this field"
	} else if !handleRegex.MatchString(handle) || strings.HasPrefix(handle, ".") || strings.HasSuffix(handle, ".") {
		errs["handle"] = "<characters, numbers and '_' / '.' in between>"
	}

	if isEmpty(email) {
		errs["email"] = "Please complete this field"
	} else if !emailRegex.MatchString(email) {
		errs["email"] = "Please enter a valid email"
	} else if len(email) > 60 {
		errs["email"] = "Please enter a shorter email"
	}

	if isEmpty(password) {
		errs["password"] = "Please complete this field"
	} else if len(password) > 50 {
		errs["password"] = "Please enter a shorter password"
	}

	if password != confirmPassword {
		errs["confirmPassword"] = "Passwords don't match"
	}
	return errs
}

func validateLogin(email, password string) map[string]string {
	errs := map[string]string{}
	if isEmpty(email) {
		errs["email"] = "Please complete this field"
	}
	if isEmpty(password) {
		errs["password"] = "Please complete this field"
	}
	return errs
}

// validateUserDetails checks the profile form and normalises the optional
// contact fields in place.
func validateUserDetails(user *models.User) map[string]string {
	errs := map[string]string{}

	if isEmpty(user.FullName) {
		errs["fullName"] = "Please complete this field"
	} else if !fullNameRegex.MatchString(user.FullName) {
		errs["fullName"] = "Please enter a valid name"
	} else if len(user.FullName) > 65 {
		errs["fullName"] = "Please enter a shorter name"
	}

	if isEmpty(user.Location.Address) {
		errs["address"] = "Please complete this field"
	} else if len(user.Location.Address) > 100 {
		errs["address"] = "Please enter a shorter address"
	}
	if isEmpty(user.Location.Postcode) {
		errs["postcode"] = "Please complete this field"
	} else if !postcodeRegex.MatchString(user.Location.Postcode) {
		errs["postcode"] = "Please enter a valid Malaysia postcode"
	}
	if isEmpty(user.Location.City) {
		errs["city"] = "Please complete this field"
	} else if len(user.Location.City) > 35 {
		errs["city"] = "Please enter a shorter city name"
	}
	if isEmpty(user.Location.State) {
		errs["state"] = "Please complete this field"
	}

	if !isEmpty(user.Contact.PhoneNo) {
		if !phoneNoRegex.MatchString(user.Contact.PhoneNo) {
			errs["phoneNo"] = "Please enter a valid phone number"
		} else {
			user.Contact.PhoneNo = normalizePhoneNo(user.Contact.PhoneNo)
		}
	}
	user.Contact.Facebook = reduceProfileURL(user.Contact.Facebook, "facebook.com")
	user.Contact.Instagram = reduceProfileURL(user.Contact.Instagram, "instagram.com")

	return errs
}

// normalizePhoneNo strips separators and pins the Malaysian country prefix.
func normalizePhoneNo(phoneNo string) string {
	digits := strings.Join(digitsRegex.FindAllString(phoneNo, -1), "")
	if !strings.HasPrefix(digits, "6") {
		digits = "6" + digits
	}
	return digits
}

// reduceProfileURL turns a pasted profile link into the bare username.
func reduceProfileURL(value, domain string) string {
	if !strings.Contains(value, domain) {
		return value
	}
	idx := strings.Index(value, domain+"/")
	if idx == -1 {
		return value
	}
	username := value[idx+len(domain)+1:]
	return strings.TrimSuffix(username, "/")
}

func validatePost(post models.Post) map[string]string {
	errs := map[string]string{}
	if isEmpty(post.Name) {
		errs["name"] = "Please complete this field"
	} else if len(post.Name) > 50 {
		errs["name"] = "Please enter a shorter title"
	}
	if isEmpty(post.Description) {
		errs["description"] = "Please complete this field"
	}
	if isEmpty(post.Image) {
		errs["image"] = "Please complete this field"
	}
	if post.Price <= 0 {
		errs["price"] = "Please complete this field"
	} else if post.Price > 999999 {
		errs["price"] = "Lower!"
	}
	return errs
}
