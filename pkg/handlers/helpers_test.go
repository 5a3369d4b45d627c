package handlers

import (
	"testing"

	"github.com/onsi/gomega"
)

func Test_DetermineListRange(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name      string
		page      int
		size      int
		wantLen   int
		wantTotal int
	}{
		{
			name:      "Should return the first page",
			page:      0,
			size:      2,
			wantLen:   2,
			wantTotal: 5,
		},
		{
			name:      "Should return a short last page",
			page:      2,
			size:      2,
			wantLen:   1,
			wantTotal: 5,
		},
		{
			name:      "Should return nothing past the end",
			page:      5,
			size:      2,
			wantLen:   0,
			wantTotal: 5,
		},
	}

	for _, testcase := range tests {
		tt := testcase

		t.Run(tt.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			list, total := DetermineListRange(items, tt.page, tt.size)
			g.Expect(list).To(gomega.HaveLen(tt.wantLen))
			g.Expect(total).To(gomega.Equal(tt.wantTotal))
		})
	}
}
