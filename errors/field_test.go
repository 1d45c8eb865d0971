package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		unauthorizedNameErr = Field("name", ErrUnauthorized, "a")
		humanNameErr        = Field("name", ErrHuman, "b")
		emptyGenderErr      = Field("gender", ErrEmpty, "gender is required")
		userMultiErr        = Field("user", Append(
			humanNameErr,
			Append(emptyGenderErr, ErrState),
		), "user data invalid")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedNameErr,
			Field: "name",
			Want:  []error{unauthorizedNameErr},
		},
		"two error found by the name": {
			Err: Append(
				unauthorizedNameErr,
				humanNameErr,
			),
			Field: "name",
			Want: []error{
				unauthorizedNameErr,
				humanNameErr,
			},
		},
		"field can contain a multierror": {
			Err:   userMultiErr,
			Field: "user",
			Want:  []error{userMultiErr},
		},
		"field can inspect errors tree to find match (name)": {
			Err:   userMultiErr,
			Field: "name",
			Want:  []error{humanNameErr},
		},
		"field can inspect errors tree to find match (gender)": {
			Err:   userMultiErr,
			Field: "gender",
			Want:  []error{emptyGenderErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "foo",
			Want:  nil,
		},
		"error not found by the field name": {
			Err:   ErrUnauthorized,
			Field: "foo",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestAppendField(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Quorum", nil)
	if errs != nil {
		t.Fatalf("nil field error must be ignored, got %v", errs)
	}
	errs = AppendField(errs, "Quorum", ErrInput)
	errs = AppendField(errs, "Signers", ErrDuplicate)
	if !ErrInput.Is(errs) || !ErrDuplicate.Is(errs) {
		t.Fatalf("both errors expected, got %v", errs)
	}
	if n := len(FieldErrors(errs, "Signers")); n != 1 {
		t.Fatalf("want one signers error, got %d", n)
	}
}

func TestFieldIs(t *testing.T) {
	errs := Append(
		Field("Signers.1", ErrDuplicate, "signer repeated"),
		Field("Quorum", ErrInput, "zero"),
	)

	cases := map[string]struct {
		field string
		want  *Error
		match bool
	}{
		"matching field error":        {field: "Quorum", want: ErrInput, match: true},
		"parent of the field error":   {field: "Signers.1", want: ErrDuplicate, match: true},
		"different error on field":    {field: "Quorum", want: ErrDuplicate, match: false},
		"no error expected and none":  {field: "Signers.0", want: nil, match: true},
		"no error expected but found": {field: "Quorum", want: nil, match: false},
		"error expected but none":     {field: "Signers.0", want: ErrInput, match: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := FieldIs(errs, tc.field, tc.want); got != tc.match {
				t.Fatalf("want %v, got %v", tc.match, got)
			}
		})
	}

	if !FieldIs(nil, "Quorum", nil) {
		t.Fatal("nil error has no field errors")
	}
}
