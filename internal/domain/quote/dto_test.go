package quote_test

import (
	"errors"
	"testing"

	"cctv-service/internal/domain/quote"
	xerrors "cctv-service/internal/pkg/errors"
)

func validSubmit() quote.SubmitRequest {
	return quote.SubmitRequest{
		Name:    "Yassine Alami",
		Email:   "yassine@example.com",
		Phone:   "+212 661-234567",
		Service: "CCTV Installation",
		Message: "Need 8 cameras installed at my warehouse in Ain Sebaa.",
		Lang:    "fr",
	}
}

func TestSubmitRequestNormalize(t *testing.T) {
	t.Run("trims and lowercases", func(t *testing.T) {
		r := quote.SubmitRequest{
			Name:    "  Yassine Alami  ",
			Email:   " Yassine@Example.COM ",
			Phone:   " 0661234567 ",
			Service: " Maintenance ",
			Message: " please call back soon ",
			Lang:    "en",
		}
		r.Normalize()

		if r.Name != "Yassine Alami" {
			t.Errorf("name = %q", r.Name)
		}
		if r.Email != "yassine@example.com" {
			t.Errorf("email = %q", r.Email)
		}
		if r.Phone != "0661234567" {
			t.Errorf("phone = %q", r.Phone)
		}
		if r.Service != "Maintenance" {
			t.Errorf("service = %q", r.Service)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		r := quote.SubmitRequest{}
		r.Normalize()
		if r.Service != "General Inquiry" {
			t.Errorf("service default = %q", r.Service)
		}
		if r.Lang != "ar" {
			t.Errorf("lang default = %q", r.Lang)
		}
	})

	t.Run("unknown language falls back to arabic", func(t *testing.T) {
		r := validSubmit()
		r.Lang = "de"
		r.Normalize()
		if r.Lang != "ar" {
			t.Errorf("lang = %q, want ar", r.Lang)
		}
	})
}

func TestSubmitRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		r := validSubmit()
		r.Normalize()
		fieldErrs, err := r.Validate()
		if err != nil {
			t.Fatalf("unexpected error: %v (fields: %v)", err, fieldErrs)
		}
	})

	tests := []struct {
		name   string
		mutate func(*quote.SubmitRequest)
		field  string
	}{
		{"short name", func(r *quote.SubmitRequest) { r.Name = "A" }, "name"},
		{"empty email", func(r *quote.SubmitRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *quote.SubmitRequest) { r.Email = "not-an-email" }, "email"},
		{"short phone", func(r *quote.SubmitRequest) { r.Phone = "12345" }, "phone"},
		{"alphabetic phone", func(r *quote.SubmitRequest) { r.Phone = "06six1234567" }, "phone"},
		{"short message", func(r *quote.SubmitRequest) { r.Message = "hi" }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validSubmit()
			tt.mutate(&r)
			r.Normalize()

			fieldErrs, err := r.Validate()
			if !errors.Is(err, xerrors.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
			if _, ok := fieldErrs[tt.field]; !ok {
				t.Errorf("missing field error for %q, got %v", tt.field, fieldErrs)
			}
		})
	}

	t.Run("spaced international phone accepted", func(t *testing.T) {
		r := validSubmit()
		r.Phone = "+212 (661) 23-45-67"
		r.Normalize()
		if _, err := r.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestHasPricingDetails(t *testing.T) {
	r := validSubmit()
	if r.HasPricingDetails() {
		t.Error("contact-only request should not carry pricing details")
	}

	r.LocationID = 1
	r.CameraCount = 8
	r.Resolution = "8MP"
	r.DifficultyLevel = "medium"
	if !r.HasPricingDetails() {
		t.Error("fully specified request should carry pricing details")
	}

	r.Resolution = ""
	if r.HasPricingDetails() {
		t.Error("missing resolution should disable pricing")
	}
}
