package services

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	mocket "github.com/selvatico/go-mocket"

	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

func Test_applicationService_List(t *testing.T) {
	RegisterTestingT(t)

	type args struct {
		criteria public.SearchCriteria
		size     int32
		page     int32
	}
	tests := []struct {
		name      string
		args      args
		wantErr   bool
		wantLen   int
		wantTotal int
		setupFn   func()
	}{
		{
			name:    "zero page size is rejected before any query runs",
			args:    args{size: 0, page: 0},
			wantErr: true,
			setupFn: func() {
				mocket.Catcher.Reset()
			},
		},
		{
			name:    "negative page is rejected before any query runs",
			args:    args{size: 20, page: -1},
			wantErr: true,
			setupFn: func() {
				mocket.Catcher.Reset()
			},
		},
		{
			name: "empty result with total count",
			args: args{size: 20, page: 0},
			setupFn: func() {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "applications"`).
					WithReply(countRow(0))
			},
		},
		{
			name:      "keyword search returns matching rows and the unpaged total",
			args:      args{criteria: public.SearchCriteria{Keyword: "LDAP"}, size: 20, page: 0},
			wantLen:   1,
			wantTotal: 42,
			setupFn: func() {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(1) FROM "applications"`).
					WithReply(countRow(42))
				mocket.Catcher.NewMock().
					WithQuery(`SELECT * FROM "applications"`).
					WithReply(applicationRow("active"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupFn()
			k := &applicationService{
				connectionFactory: db.NewMockConnectionFactory(nil),
			}
			list, paging, err := k.List(context.Background(), tt.args.criteria, tt.args.size, tt.args.page)
			Expect(err != nil).To(Equal(tt.wantErr))
			if tt.wantErr {
				return
			}
			Expect(list).To(HaveLen(tt.wantLen))
			Expect(paging.Total).To(Equal(tt.wantTotal))
			Expect(paging.Page).To(Equal(int(tt.args.page)))
			Expect(paging.Size).To(Equal(int(tt.args.size)))
		})
	}
}

func Test_applicationService_GetLogo(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name     string
		wantErr  bool
		wantCode int
		setupFn  func()
	}{
		{
			name:     "missing application is a 404",
			wantErr:  true,
			wantCode: 404,
			setupFn: func() {
				mocket.Catcher.Reset()
			},
		},
		{
			name:     "application without a stored logo is a 404",
			wantErr:  true,
			wantCode: 404,
			setupFn: func() {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT "id","logo" FROM "applications"`).
					WithReply([]map[string]interface{}{{"id": testApplicationID}})
			},
		},
		{
			name: "stored logo bytes are returned",
			setupFn: func() {
				mocket.Catcher.Reset()
				mocket.Catcher.NewMock().
					WithQuery(`SELECT "id","logo" FROM "applications"`).
					WithReply([]map[string]interface{}{{"id": testApplicationID, "logo": []byte{0x89, 0x50, 0x4e, 0x47}}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupFn()
			k := &applicationService{
				connectionFactory: db.NewMockConnectionFactory(nil),
			}
			logo, err := k.GetLogo(context.Background(), testApplicationID)
			Expect(err != nil).To(Equal(tt.wantErr))
			if tt.wantErr {
				Expect(err.HttpCode).To(Equal(tt.wantCode))
				return
			}
			Expect(logo).ToNot(BeEmpty())
		})
	}
}
