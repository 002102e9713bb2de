package rejection

import (
	"testing"

	"github.com/pkg/errors"
)

func TestCategory(t *testing.T) {
	specific := errors.Wrap(ErrVerification, "Signature invalid")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, CategoryNone},
		{"plain", errors.New("disk full"), CategoryNone},
		{"configuration", ErrConfiguration, CategoryConfiguration},
		{"authorization", errors.Wrap(ErrAuthorization, "caller"), CategoryAuthorization},
		{"verification", specific, CategoryVerification},
		{"double wrapped", errors.Wrap(specific, "update"), CategoryVerification},
		{"unsupported", ErrUnsupportedKeyType, CategoryUnsupportedKeyType},
		{"validation", errors.Wrapf(ErrValidation, "field %s", "amount"), CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(tt.err); got != tt.want {
				t.Errorf("Got %s, want %s", CategoryName(got), CategoryName(tt.want))
			}
		})
	}

	if !errors.Is(errors.Wrap(specific, "update"), specific) {
		t.Errorf("Specific error lost through wrapping")
	}
}
