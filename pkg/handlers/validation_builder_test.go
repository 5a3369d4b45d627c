package handlers

import (
	"testing"

	"github.com/onsi/gomega"
)

func Test_Validation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		checks  []ValidateOption
		wantErr bool
		want    string
	}{
		{
			name:   "Should apply the default when the value is empty",
			value:  "",
			checks: []ValidateOption{WithDefault("stable")},
			want:   "stable",
		},
		{
			name:    "Should fail when shorter than the minimum length",
			value:   "ab",
			checks:  []ValidateOption{MinLen(3)},
			wantErr: true,
			want:    "ab",
		},
		{
			name:    "Should fail when longer than the maximum length",
			value:   "abcdef",
			checks:  []ValidateOption{MaxLen(3)},
			wantErr: true,
			want:    "abcdef",
		},
		{
			name:   "Should accept a value in the allowed set",
			value:  "scimv2",
			checks: []ValidateOption{IsOneOf("connid", "scimv2", "scimv1", "rest")},
			want:   "scimv2",
		},
		{
			name:    "Should reject a value outside the allowed set",
			value:   "soap",
			checks:  []ValidateOption{IsOneOf("connid", "scimv2", "scimv1", "rest")},
			wantErr: true,
			want:    "soap",
		},
		{
			name:   "Should run options in order",
			value:  "",
			checks: []ValidateOption{WithDefault("connid"), MinLen(1), MaxLen(40)},
			want:   "connid",
		},
	}

	for _, testcase := range tests {
		tt := testcase

		t.Run(tt.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			value := tt.value
			err := Validation("field", &value, tt.checks...)()
			if tt.wantErr {
				g.Expect(err).ToNot(gomega.BeNil())
			} else {
				g.Expect(err).To(gomega.BeNil())
			}
			g.Expect(value).To(gomega.Equal(tt.want))
		})
	}
}
