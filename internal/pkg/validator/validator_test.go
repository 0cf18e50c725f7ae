package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-01", "2024-02-29", "1999-12-31"}
	invalid := []string{"2025-13-01", "2025-02-30", "01-01-2025", "2025/01/01", "", "today"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", "", "10:30:00"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"draft", "calculated", "approved"}
	if !IsInSlice("draft", slice) {
		t.Error("IsInSlice(draft) = false, want true")
	}
	if IsInSlice("paid", slice) {
		t.Error("IsInSlice(paid) = true, want false")
	}
	if IsInSlice("", slice) {
		t.Error("IsInSlice(empty) = true, want false")
	}
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input string
		want  time.Weekday
		ok    bool
	}{
		{"monday", time.Monday, true},
		{"Monday", time.Monday, true},
		{" SUNDAY ", time.Sunday, true},
		{"friday", time.Friday, true},
		{"someday", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseWeekday(c.input)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseWeekday(%q) = (%v, %v), want (%v, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "must be in YYYY-MM-DD format"},
		{Field: "limit", Message: "must not exceed 100"},
	}

	if errs.Error() != "start_date: must be in YYYY-MM-DD format; limit: must not exceed 100" {
		t.Errorf("unexpected Error(): %q", errs.Error())
	}

	m := errs.ToMap()
	if len(m) != 2 || m["limit"] != "must not exceed 100" {
		t.Errorf("unexpected ToMap(): %v", m)
	}
}
