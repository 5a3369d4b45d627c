package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/onsi/gomega"

	"github.com/Evolveum/integration-catalog-sub000/pkg/api"
	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
)

func Test_ErrorsList(t *testing.T) {
	g := gomega.NewWithT(t)
	req, rw := GetHandlerParams("GET", "/errors", nil, t)

	NewErrorsHandler().List(rw, req)

	g.Expect(rw.Code).To(gomega.Equal(http.StatusOK))
	var list api.ErrorList
	g.Expect(json.NewDecoder(rw.Body).Decode(&list)).To(gomega.Succeed())
	g.Expect(list.Kind).To(gomega.Equal("ErrorList"))
	g.Expect(int(list.Total)).To(gomega.Equal(len(errors.Errors())))
	g.Expect(list.Items).ToNot(gomega.BeEmpty())
}

func Test_ErrorsGet(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		wantStatusCode int
	}{
		{
			name:           "Should return an existing error by id",
			id:             fmt.Sprintf("%d", errors.ErrorNotFound),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Should return 404 for an unknown error id",
			id:             "99999",
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "Should return 404 for a non numeric error id",
			id:             "not-a-number",
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, testcase := range tests {
		tt := testcase

		t.Run(tt.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			req, rw := GetHandlerParams("GET", "/errors/"+tt.id, nil, t)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})

			NewErrorsHandler().Get(rw, req)
			g.Expect(rw.Code).To(gomega.Equal(tt.wantStatusCode))
		})
	}
}
